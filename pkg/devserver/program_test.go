package devserver

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"src.autoui.dev/pkg/must"
	. "src.autoui.dev/pkg/prog/progtest"
	"src.autoui.dev/pkg/testutil"
)

func TestProgram_BadUsage(t *testing.T) {
	testutil.InTempDir(t)
	Test(t, &Program{},
		ThatAutoui("-dev", "a.at", "b.at").
			ExitsWith(2).WritesStderrContaining("arguments are not allowed with -dev"),
		ThatAutoui("-dev", "missing.at").
			ExitsWith(2).WritesStderrContaining("missing.at"),
	)
}

func TestProgram_Serves(t *testing.T) {
	dir := testutil.InTempDir(t)
	must.WriteFile("autoui.yaml", "dev:\n  store: "+filepath.Join(dir, "state.db")+"\n")
	must.WriteFile("hello.at", `text("hello")`)

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	p := &Program{ctx: ctx, ready: ready}
	type result struct {
		exit   int
		stdout string
	}
	done := make(chan result, 1)
	go func() {
		exit, stdout, _ := Run(p, "-dev", "hello.at", "-addr", "127.0.0.1:0")
		done <- result{exit, stdout}
	}()

	addr := <-ready
	resp, err := http.Get("http://" + addr + "/view")
	require.NoError(t, err)
	body := must.OK1(io.ReadAll(resp.Body))
	resp.Body.Close()
	require.Contains(t, string(body), `"text":"hello"`)

	cancel()
	r := <-done
	require.Equal(t, 0, r.exit)
	require.Contains(t, r.stdout, "serving hello.at on http://"+addr)
}
