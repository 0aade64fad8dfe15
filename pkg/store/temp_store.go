package store

import (
	"path/filepath"

	"src.autoui.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory. The
// Store is closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) *Store {
	st, err := Open(filepath.Join(testutil.TempDir(c), "state.db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
