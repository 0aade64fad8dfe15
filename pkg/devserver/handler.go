package devserver

import (
	_ "embed"
	"io"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"src.autoui.dev/pkg/bridge"
)

//go:embed index.html
var indexHTML []byte

const maxEventSize = 1 << 16

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()
	r.GET("/", s.serveIndex)
	r.GET("/view", s.serveView)
	r.POST("/event", s.serveEvent)
	r.GET("/ws", s.serveWS)
	return cors.Default().Handler(r)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) serveView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var data []byte
	if err := s.do(r.Context(), func() { data = s.encoded }); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) serveEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		http.Error(w, "bad event: "+err.Error(), http.StatusBadRequest)
		return
	}
	if ev.Message == "" {
		http.Error(w, "bad event: no message", http.StatusBadRequest)
		return
	}
	var data []byte
	var herr error
	err = s.do(r.Context(), func() {
		herr = s.handle(ev)
		data = s.encoded
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	status := http.StatusOK
	switch {
	case bridge.IsKind(herr, bridge.ComponentNotFound):
		status = http.StatusNotFound
	case herr != nil:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, data)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Printf("upgrade: %v", err)
		return
	}
	conn.SetReadLimit(maxEventSize)
	c := &client{send: make(chan []byte, 16)}
	if err := s.do(r.Context(), func() { s.addClient(c) }); err != nil {
		conn.Close()
		return
	}

	go func() {
		defer conn.Close()
		for data := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Printf("write: %v", err)
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil || ev.Message == "" {
			logger.Printf("bad event from websocket: %q", data)
			continue
		}
		if err := s.do(ctx, func() { s.handle(ev) }); err != nil {
			break
		}
	}
	s.do(ctx, func() { s.dropClient(c) })
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
