package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.autoui.dev/pkg/tt"
)

func TestDedent(t *testing.T) {
	tt.Test(t, tt.Fn("Dedent", Dedent), tt.Table{
		tt.Args("\n  a\n    b\n  c\n").Rets("a\n  b\nc\n"),
		tt.Args("\ta\n\tb").Rets("a\nb"),
		tt.Args("  a\n\n  b").Rets("a\n\nb"),
		tt.Args("  a\n \n  b").Rets("a\n\nb"),
		tt.Args("  a\n\tb").Rets("  a\n\tb"),
	})
}

func TestInTempDir(t *testing.T) {
	old, _ := os.Getwd()
	var dir string
	t.Run("inner", func(t *testing.T) {
		dir = InTempDir(t)
		ApplyDir(map[string]string{"a/b.txt": "b", "c.txt": "c"})
		if _, err := os.Stat(filepath.Join(dir, "a", "b.txt")); err != nil {
			t.Error(err)
		}
	})
	if wd, _ := os.Getwd(); wd != old {
		t.Errorf("working directory not restored: %s", wd)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("temp dir not removed")
	}
}
