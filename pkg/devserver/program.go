package devserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"src.autoui.dev/pkg/config"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/prog"
	"src.autoui.dev/pkg/store"
)

// Program is the dev server subprogram.
type Program struct {
	dev, addr string
	strict    *bool
	config    *string

	// Used in tests.
	ctx   context.Context
	ready chan<- string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.dev, "dev", "", "serve a live preview of a .at file, reloading it on change")
	fs.StringVar(&p.addr, "addr", "", "address to serve on; overrides autoui.yaml; used with -dev")
	p.strict = fs.Strict()
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.dev == "" {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -dev")
	}
	c, err := config.Find(p.dev, *p.config)
	if err != nil {
		return err
	}
	if _, err := os.Stat(p.dev); err != nil {
		return err
	}
	addr := c.Dev.Addr
	if p.addr != "" {
		addr = p.addr
	}
	opts := Options{Policy: c.Policy(), Debounce: c.Dev.Debounce}
	if *p.strict {
		opts.Policy = fallback.Strict
	}
	if c.Dev.Store != "" {
		st, err := store.Open(c.Dev.Store)
		if err != nil {
			fmt.Fprintf(fds[2], "state will not be persisted: %v\n", err)
		} else {
			defer st.Close()
			opts.Store = st
		}
	}

	ctx := p.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ready := make(chan string, 1)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		if a, ok := <-ready; ok {
			fmt.Fprintf(fds[1], "serving %s on http://%s\n", p.dev, a)
			if p.ready != nil {
				p.ready <- a
			}
		}
	}()
	err = Serve(ctx, New(p.dev, opts), addr, ready)
	close(ready)
	<-printed
	return err
}
