package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.autoui.dev/pkg/testutil"
	"src.autoui.dev/pkg/vals"
)

func TestSnapshot(t *testing.T) {
	st := MustTempStore(t)

	snap := Snapshot{
		"Counter": {"count": 5, "ratio": 0.5, "label": "x", "on": true,
			"items": vals.List{1, "a", vals.List{}}, "empty": nil},
		"Other": {},
	}
	if err := st.SaveSnapshot("a.at", snap); err != nil {
		t.Fatal(err)
	}
	got, err := st.Snapshot("a.at")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("Snapshot (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Missing(t *testing.T) {
	st := MustTempStore(t)
	_, err := st.Snapshot("nope.at")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("got error %v, want ErrNoSnapshot", err)
	}
}

func TestSnapshot_SkipsUnpersistable(t *testing.T) {
	st := MustTempStore(t)
	snap := Snapshot{"W": {"n": 1, "node": vals.NewNode("text")}}
	if err := st.SaveSnapshot("a.at", snap); err != nil {
		t.Fatal(err)
	}
	got, _ := st.Snapshot("a.at")
	want := Snapshot{"W": {"n": 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Snapshot (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Replace(t *testing.T) {
	st := MustTempStore(t)
	st.SaveSnapshot("a.at", Snapshot{"W": {"n": 1}})
	st.SaveSnapshot("a.at", Snapshot{"W": {"n": 2}})
	got, _ := st.Snapshot("a.at")
	if got["W"]["n"] != 2 {
		t.Errorf("got n = %v, want 2", got["W"]["n"])
	}
}

func TestSourcesAndDelete(t *testing.T) {
	st := MustTempStore(t)
	st.SaveSnapshot("b.at", Snapshot{})
	st.SaveSnapshot("a.at", Snapshot{})

	sources, err := st.Sources()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.at", "b.at"}, sources); diff != "" {
		t.Errorf("Sources (-want +got):\n%s", diff)
	}

	if err := st.DeleteSnapshot("a.at"); err != nil {
		t.Fatal(err)
	}
	sources, _ = st.Sources()
	if diff := cmp.Diff([]string{"b.at"}, sources); diff != "" {
		t.Errorf("Sources after delete (-want +got):\n%s", diff)
	}
}

func TestSessions(t *testing.T) {
	st := MustTempStore(t)
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second"} {
		seq, err := st.AddSession(Session{ID: id, Source: "a.at", Started: started})
		if err != nil {
			t.Fatal(err)
		}
		if seq != i+1 {
			t.Errorf("got seq %d, want %d", seq, i+1)
		}
	}

	sessions, err := st.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	want := []Session{
		{Seq: 1, ID: "first", Source: "a.at", Started: started},
		{Seq: 2, ID: "second", Source: "a.at", Started: started},
	}
	if diff := cmp.Diff(want, sessions); diff != "" {
		t.Errorf("Sessions (-want +got):\n%s", diff)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "state.db")
	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	st.SaveSnapshot("a.at", Snapshot{"W": {"n": 3}})
	st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	got, err := st.Snapshot("a.at")
	if err != nil {
		t.Fatal(err)
	}
	if got["W"]["n"] != 3 {
		t.Errorf("got n = %v, want 3", got["W"]["n"])
	}
}
