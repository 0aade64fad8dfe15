// Package watch watches source files and sends reload requests when they
// change.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rjeczalik/notify"

	"src.autoui.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[watch] ")

// DefaultDebounce is used when a zero debounce is passed to File.
const DefaultDebounce = 100 * time.Millisecond

// Request asks for the file at Path to be reloaded.
type Request struct {
	Path string
}

// File watches a file and sends a Request on the returned channel after it has
// been changed and then left alone for the debounce duration. The directory
// of the file is watched, so that editors that save by renaming are handled.
// The channel is closed after ctx is done.
func File(ctx context.Context, path string, debounce time.Duration) (<-chan Request, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	events := make(chan notify.EventInfo, 16)
	err = notify.Watch(filepath.Dir(abs), events, notify.Write, notify.Create, notify.Rename)
	if err != nil {
		return nil, err
	}
	logger.Printf("watching %s", abs)

	paths := make(chan string)
	go func() {
		defer notify.Stop(events)
		defer close(paths)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				if !samePath(ev.Path(), abs) {
					continue
				}
				logger.Printf("%s: %v", ev.Path(), ev.Event())
				select {
				case paths <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	reqs := make(chan Request)
	go debounceRequests(ctx, paths, debounce, reqs)
	return reqs, nil
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	ra, err1 := filepath.EvalSymlinks(a)
	rb, err2 := filepath.EvalSymlinks(b)
	return err1 == nil && err2 == nil && ra == rb
}

// Sends one Request for each burst of paths on in, once in has been quiet for
// d. Closes out when in is closed or ctx is done.
func debounceRequests(ctx context.Context, in <-chan string, d time.Duration, out chan<- Request) {
	defer close(out)
	timer := time.NewTimer(d)
	if !timer.Stop() {
		<-timer.C
	}
	var pending string
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-in:
			if !ok {
				return
			}
			pending = p
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d)
		case <-timer.C:
			select {
			case out <- Request{pending}:
			case <-ctx.Done():
				return
			}
		}
	}
}
