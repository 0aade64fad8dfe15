package outline

import (
	"os"

	"src.autoui.dev/pkg/bridge"
	"src.autoui.dev/pkg/config"
	"src.autoui.dev/pkg/convert"
	"src.autoui.dev/pkg/eval"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/prog"
)

// Program is the default subprogram. It interprets a file and prints the
// outline of its main view.
type Program struct {
	strict *bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.strict = fs.Strict()
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) != 1 {
		return prog.BadUsage("expected exactly one .at file")
	}
	c, err := config.Find(args[0], *p.config)
	if err != nil {
		return err
	}
	policy := c.Policy()
	if *p.strict {
		policy = fallback.Strict
	}

	ev := eval.NewEvaler()
	ev.Stdout = fds[1]
	b := bridge.New(ev, policy)
	if err := b.LoadFile(args[0]); err != nil {
		eval.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	v, err := b.View(convert.Config{Policy: policy})
	if err != nil {
		eval.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	return Write(fds[1], v)
}
