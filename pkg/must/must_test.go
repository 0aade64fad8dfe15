package must

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOK(t *testing.T) {
	OK(nil)
	if OK1(42, nil) != 42 {
		t.Errorf("OK1 changed the value")
	}
	if a, b := OK2("a", 2, nil); a != "a" || b != 2 {
		t.Errorf("OK2 changed the values")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("OK(err) didn't panic")
		}
	}()
	OK(errors.New("boom"))
}

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a", "b.txt")
	WriteFile(name, "content")
	if got := ReadFileString(name); got != "content" {
		t.Errorf("got %q", got)
	}
}
