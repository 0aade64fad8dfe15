package diag

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"src.autoui.dev/pkg/testutil"
	"src.autoui.dev/pkg/tt"
)

type testErrorTag struct{}

func (testErrorTag) ErrorTag() string { return "test error" }

type testError = Error[testErrorTag]

func newTestError(src string, from, to int, msg string) *testError {
	return &testError{Message: msg, Context: *NewContext("a.at", src, Ranging{from, to})}
}

func TestRanging(t *testing.T) {
	tt.Test(t, tt.Fn("PointRanging", PointRanging), tt.Table{
		tt.Args(3).Rets(Ranging{3, 3}),
	})
	tt.Test(t, tt.Fn("MixedRanging", MixedRanging), tt.Table{
		tt.Args(Ranging{1, 2}, Ranging{5, 8}).Rets(Ranging{1, 8}),
	})
}

func TestContext_Position(t *testing.T) {
	src := "ab\ncdé\nf"
	tt.Test(t, tt.Fn("positionOf", positionOf), tt.Table{
		tt.Args(src, 0).Rets(Position{1, 1}),
		tt.Args(src, 3).Rets(Position{2, 1}),
		tt.Args(src, 7).Rets(Position{2, 4}),
		tt.Args(src, 8).Rets(Position{3, 1}),
		tt.Args(src, 100).Rets(Position{3, 2}),
	})
}

func TestContext_Show(t *testing.T) {
	src := "type A {\n    count in = 0\n}\n"
	c := NewContext("a.at", src, Ranging{19, 21})
	want := testutil.Dedent(`
		a.at:2:11
		    count in = 0
		          ^^`)
	if got := c.Show(""); got != want {
		t.Errorf("Show() =\n%s\nwant\n%s", got, want)
	}
	// An empty range still shows one caret.
	c = NewContext("a.at", "abc", PointRanging(3))
	if got := c.Show("> "); got != "a.at:1:4\n> abc\n>    ^" {
		t.Errorf("Show() = %q", got)
	}
	c = NewContext("a.at", "abc", Ranging{2, 10})
	if got := c.Show(""); got != "a.at, invalid position 2-10" {
		t.Errorf("Show() = %q", got)
	}
}

func TestError(t *testing.T) {
	err := newTestError("x = ?", 4, 5, "bad token")
	if got := err.Error(); got != "test error: a.at:1:5: bad token" {
		t.Errorf("Error() = %q", got)
	}
	if got := err.Show(""); got != "Test Error: bad token\n  a.at:1:5\n  x = ?\n      ^" {
		t.Errorf("Show() = %q", got)
	}
	if err.Range() != (Ranging{4, 5}) {
		t.Errorf("Range() = %v", err.Range())
	}
}

func TestPackAndUnpackErrors(t *testing.T) {
	e1 := newTestError("ab\ncd", 0, 1, "first")
	e2 := newTestError("ab\ncd", 3, 4, "second")

	if PackErrors[testErrorTag](nil) != nil {
		t.Errorf("PackErrors(nil) != nil")
	}
	if err := PackErrors([]*testError{e1}); err != e1 {
		t.Errorf("PackErrors of one error returns %v", err)
	}
	packed := PackErrors([]*testError{e1, e2})
	if got := packed.Error(); got != "multiple test errors in a.at: 1:1: first; 2:1: second" {
		t.Errorf("Error() = %q", got)
	}
	unpacked := UnpackErrors[testErrorTag](packed)
	if len(unpacked) != 2 || unpacked[0] != e1 || unpacked[1] != e2 {
		t.Errorf("UnpackErrors = %v", unpacked)
	}
	if got := UnpackErrors[testErrorTag](fmt.Errorf("wrapped: %w", e1)); len(got) != 1 || got[0] != e1 {
		t.Errorf("UnpackErrors of a wrapped error = %v", got)
	}
	if got := UnpackErrors[testErrorTag](errors.New("plain")); got != nil {
		t.Errorf("UnpackErrors of a plain error = %v", got)
	}
}

func TestShowError(t *testing.T) {
	var buf bytes.Buffer
	ShowError(&buf, errors.New("plain"))
	if buf.String() != "plain\n" {
		t.Errorf("got %q", buf.String())
	}
	buf.Reset()
	ShowError(&buf, newTestError("x", 0, 1, "bad"))
	if buf.String() != "Test Error: bad\n  a.at:1:1\n  x\n  ^\n" {
		t.Errorf("got %q", buf.String())
	}
}
