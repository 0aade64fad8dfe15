// Package devserver implements a preview server for Auto UI files. It keeps a
// program loaded in a bridge, reloads it when the file changes, and serves the
// main view to browser clients over HTTP and websockets.
//
// All bridge calls happen on one goroutine, the loop started by Run. HTTP
// handlers and the file watcher hand work to it through channels.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"src.autoui.dev/pkg/bridge"
	"src.autoui.dev/pkg/convert"
	"src.autoui.dev/pkg/eval"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/logutil"
	"src.autoui.dev/pkg/store"
	"src.autoui.dev/pkg/watch"
)

var logger = logutil.GetLogger("[devserver] ")

// ErrStopped is returned for requests made after the server has stopped.
var ErrStopped = errors.New("server stopped")

// Options keeps options for a Server.
type Options struct {
	// Policy is used for the bridge and view conversion.
	Policy fallback.Policy
	// Debounce is passed to watch.File.
	Debounce time.Duration
	// If not nil, widget state is restored from and saved to the store, and
	// the session is recorded.
	Store *store.Store
	// If true, the file is not watched.
	NoWatch bool
}

// State is what clients receive after every change.
type State struct {
	Widget string `json:"widget,omitzero"`
	View   *Node  `json:"view,omitzero"`
	Error  string `json:"error,omitzero"`
}

// Event is what clients send to deliver a message to the main widget.
type Event struct {
	Message string `json:"message"`
	Args    []any  `json:"args,omitzero"`
}

// Server is a preview server for one file.
type Server struct {
	path    string
	opts    Options
	session string
	b       *bridge.Bridge

	calls chan func()
	done  chan struct{}

	// Only accessed from the loop.
	clients map[*client]struct{}
	state   State
	encoded []byte

	upgrader websocket.Upgrader
}

type client struct {
	send chan []byte
}

// New creates a Server for the file at path.
func New(path string, opts Options) *Server {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Server{
		path:    path,
		opts:    opts,
		session: uuid.New().String(),
		b:       bridge.New(eval.NewEvaler(), opts.Policy),
		calls:   make(chan func()),
		done:    make(chan struct{}),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Session returns the id of the session of the server.
func (s *Server) Session() string { return s.session }

// Run loads the file and serves calls until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)

	s.load()
	if st := s.opts.Store; st != nil {
		_, err := st.AddSession(store.Session{ID: s.session, Source: s.path, Started: time.Now()})
		if err != nil {
			logger.Printf("failed to record session: %v", err)
		}
	}

	var reqs <-chan watch.Request
	if !s.opts.NoWatch {
		var err error
		reqs, err = watch.File(ctx, s.path, s.opts.Debounce)
		if err != nil {
			return fmt.Errorf("watch %s: %w", s.path, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			for c := range s.clients {
				s.dropClient(c)
			}
			return nil
		case req, ok := <-reqs:
			if !ok {
				reqs = nil
				continue
			}
			logger.Printf("reloading %s", req.Path)
			s.refresh(s.b.ReloadFile(req.Path))
		case f := <-s.calls:
			f()
		}
	}
}

func (s *Server) load() {
	err := s.b.LoadFile(s.path)
	if err == nil && s.opts.Store != nil {
		snap, serr := s.opts.Store.Snapshot(s.path)
		switch {
		case serr == nil:
			if rerr := s.b.Restore(snap); rerr != nil {
				logger.Printf("failed to restore state: %v", rerr)
			}
		case !errors.Is(serr, store.ErrNoSnapshot):
			logger.Printf("failed to read snapshot: %v", serr)
		}
	}
	s.refresh(err)
}

// Runs f on the loop and waits for it to finish.
func (s *Server) do(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	select {
	case s.calls <- func() { f(); close(finished) }:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-s.done:
		return ErrStopped
	}
}

// Re-renders the main view, saves the state and sends it to all clients. A
// non-nil err is reported alongside the view of the program still loaded.
func (s *Server) refresh(err error) {
	st := State{}
	if widget, ok := s.b.MainWidget(); ok {
		st.Widget = widget
	}
	if s.b.Phase() != bridge.Uninitialized {
		v, verr := s.b.View(convert.Config{Policy: s.opts.Policy})
		if verr != nil {
			err = errors.Join(err, verr)
		} else {
			st.View = Encode(v)
		}
		s.save()
	}
	if err != nil {
		logger.Printf("%v", err)
		st.Error = err.Error()
	}
	data, merr := json.Marshal(st)
	if merr != nil {
		logger.Printf("failed to encode state: %v", merr)
		return
	}
	s.state, s.encoded = st, data
	for c := range s.clients {
		s.sendTo(c)
	}
}

func (s *Server) save() {
	if s.opts.Store == nil {
		return
	}
	snapshot, err := s.b.Snapshot()
	if err != nil {
		logger.Printf("failed to take snapshot: %v", err)
		return
	}
	if err := s.opts.Store.SaveSnapshot(s.path, snapshot); err != nil {
		logger.Printf("failed to save snapshot: %v", err)
	}
}

func (s *Server) handle(ev Event) error {
	widget, ok := s.b.MainWidget()
	if !ok {
		return &bridge.Error{Kind: bridge.ComponentNotFound, Err: errors.New("main view is not a widget")}
	}
	args := make([]any, len(ev.Args))
	for i, arg := range ev.Args {
		args[i] = fromJSON(arg)
	}
	err := s.b.HandleMessage(bridge.TypedMessage{Widget: widget, Event: ev.Message, Args: args})
	s.refresh(err)
	return err
}

// JSON numbers decode as float64; whole numbers become ints.
func fromJSON(v any) any {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int(v)
		}
	case []any:
		list := make([]any, len(v))
		for i, elem := range v {
			list[i] = fromJSON(elem)
		}
		return list
	}
	return v
}

func (s *Server) addClient(c *client) {
	s.clients[c] = struct{}{}
	s.sendTo(c)
	logger.Printf("%d clients", len(s.clients))
}

func (s *Server) dropClient(c *client) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) sendTo(c *client) {
	select {
	case c.send <- s.encoded:
	default:
		logger.Printf("dropping slow client")
		s.dropClient(c)
	}
}

// Serve runs s and an HTTP server for it on addr until ctx is done. If ready
// is not nil, the address the server listens on is sent to it once it is
// accepting connections.
func Serve(ctx context.Context, s *Server, addr string, ready chan<- string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.Handler()}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(l) }()

	runErr := make(chan error, 1)
	go func() { runErr <- s.Run(ctx) }()

	logger.Printf("listening on %s", l.Addr())
	if ready != nil {
		ready <- l.Addr().String()
	}

	select {
	case err = <-runErr:
	case err = <-serveErr:
		cancel()
		<-runErr
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
