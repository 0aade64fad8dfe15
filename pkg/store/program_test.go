package store_test

import (
	"path/filepath"
	"testing"
	"time"

	. "src.autoui.dev/pkg/prog/progtest"
	"src.autoui.dev/pkg/store"
	"src.autoui.dev/pkg/testutil"
)

func TestProgram(t *testing.T) {
	dir := testutil.TempDir(t)
	db := filepath.Join(dir, "state.db")
	empty := filepath.Join(dir, "empty.db")

	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	st.SaveSnapshot("counter.at", store.Snapshot{"Counter": {"count": 5, "label": "hi"}})
	st.AddSession(store.Session{ID: "abc", Source: "counter.at",
		Started: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)})
	st.Close()

	Test(t, &store.Program{},
		ThatAutoui("-state", "x").
			ExitsWith(2).WritesStderrContaining("arguments are not allowed with -state"),
		ThatAutoui("-state", "-db", empty).WritesStdout("no persisted state\n"),
		ThatAutoui("-state", "-db", db).WritesStdoutContaining(`"hi"`),
		ThatAutoui("-state", "-db", db).WritesStdoutContaining("2024-05-01 10:00:00"),
		ThatAutoui("-state", "-db", db, "-json").
			WritesStdoutContaining(`"count":{"kind":"int","int":5}`),
		ThatAutoui("-state", "-db", db, "-clear", "counter.at").DoesNothing(),
		ThatAutoui("-state", "-db", db, "-json").
			WritesStdoutContaining(`"snapshots":{}`),
	)
}
