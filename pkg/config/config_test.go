package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/testutil"
)

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testutil.Dedent(`
		package: widgets
		types:
		  str: Text
		strict: true
		dev:
		  debounce: 250ms
		`)))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Package = "widgets"
	want.Types = map[string]string{"str": "Text"}
	want.Strict = true
	want.Dev.Debounce = 250 * time.Millisecond
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
	if c.Policy() != fallback.Strict {
		t.Errorf("Policy() = %v, want strict", c.Policy())
	}
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Parse(nil) (-want +got):\n%s", diff)
	}
	if c.Policy() != fallback.Default {
		t.Errorf("Policy() = %v, want default", c.Policy())
	}
}

func TestParse_Errors(t *testing.T) {
	for _, code := range []string{
		"packge: x",
		"dev:\n  port: 1",
		"strict: maybe",
		"dev:\n  debounce: -1s",
	} {
		if _, err := Parse([]byte(code)); err == nil {
			t.Errorf("Parse(%q) -> no error", code)
		}
	}
}

func TestFind(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{
		"a/autoui.yaml": "package: a",
		"b/main.at":     "",
		"other.yaml":    "package: other",
		"bad.yaml":      "nope: 1",
	})

	for _, tc := range []struct {
		src, explicit string
		wantPackage   string
	}{
		{"a/main.at", "", "a"},
		{"b/main.at", "", "main"},
		{"a/main.at", "other.yaml", "other"},
	} {
		c, err := Find(tc.src, tc.explicit)
		if err != nil {
			t.Errorf("Find(%q, %q) -> error %v", tc.src, tc.explicit, err)
			continue
		}
		if c.Package != tc.wantPackage {
			t.Errorf("Find(%q, %q).Package = %q, want %q",
				tc.src, tc.explicit, c.Package, tc.wantPackage)
		}
	}

	if _, err := Find("a/main.at", "missing.yaml"); err == nil {
		t.Errorf("Find with missing explicit file -> no error")
	}
	if _, err := Find("a/main.at", "bad.yaml"); err == nil {
		t.Errorf("Find with unknown key -> no error")
	}
}
