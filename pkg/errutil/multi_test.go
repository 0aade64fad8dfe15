package errutil

import (
	"errors"
	"testing"

	"src.autoui.dev/pkg/tt"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	tt.Test(t, tt.Fn("Multi", Multi), tt.Table{
		tt.Args().Rets(nil),
		tt.Args(nil, nil).Rets(nil),
		tt.Args(err1).Rets(err1),
		tt.Args(nil, err1).Rets(err1),
		tt.Args(err1, err2).Rets(tt.ErrorWithMessage("multiple errors: error 1; error 2")),
		tt.Args(Multi(err1, err2), err3).
			Rets(tt.ErrorWithMessage("multiple errors: error 1; error 2; error 3")),
	})
}

func TestErrors(t *testing.T) {
	if got := Errors(nil); got != nil {
		t.Errorf("Errors(nil) = %v", got)
	}
	if got := Errors(err1); len(got) != 1 || got[0] != err1 {
		t.Errorf("Errors(err1) = %v", got)
	}
	if got := Errors(Multi(err1, err2, err3)); len(got) != 3 {
		t.Errorf("Errors(Multi(...)) = %v", got)
	}
	if !errors.Is(Multi(err1, err2), err2) {
		t.Errorf("errors.Is can't find a combined error")
	}
}
