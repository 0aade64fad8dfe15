package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"src.autoui.dev/pkg/must"
	"src.autoui.dev/pkg/testutil"
)

func TestDebounceRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan string)
	out := make(chan Request)
	go debounceRequests(ctx, in, 20*time.Millisecond, out)

	in <- "a.at"
	in <- "a.at"
	in <- "b.at"

	select {
	case req := <-out:
		if req.Path != "b.at" {
			t.Errorf("got path %q, want b.at", req.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("no request")
	}
	select {
	case req := <-out:
		t.Errorf("got extra request %v", req)
	case <-time.After(50 * time.Millisecond):
	}

	close(in)
	select {
	case _, ok := <-out:
		if ok {
			t.Error("out not closed")
		}
	case <-time.After(time.Second):
		t.Error("out not closed")
	}
}

func TestDebounceRequests_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Request)
	go debounceRequests(ctx, make(chan string), time.Millisecond, out)
	cancel()
	select {
	case <-out:
	case <-time.After(time.Second):
		t.Error("out not closed after cancel")
	}
}

func TestFile(t *testing.T) {
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "a.at")
	other := filepath.Join(dir, "b.at")
	must.WriteFile(path, "type A is Widget {}")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reqs, err := File(ctx, path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	must.WriteFile(other, "")
	select {
	case req := <-reqs:
		t.Fatalf("got request %v for unrelated file", req)
	case <-time.After(100 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("type A is Widget { view() { text(\"x\") } }"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case req := <-reqs:
		if req.Path != path {
			t.Errorf("got path %q, want %q", req.Path, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no request after write")
	}

	cancel()
	for range reqs {
	}
}
