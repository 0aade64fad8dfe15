package codegen

import (
	"fmt"
	"os"

	"src.autoui.dev/pkg/config"
	"src.autoui.dev/pkg/eval"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/prog"
)

// Program is the code generation subprogram.
type Program struct {
	gen, out, pkg string
	format        bool

	config *string
	strict *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.gen, "gen", "", "generate Go source from a .at file")
	fs.StringVar(&p.out, "o", "", "write generated source to this file instead of stdout; used with -gen")
	fs.StringVar(&p.pkg, "pkg", "", "package of generated source; overrides autoui.yaml")
	fs.BoolVar(&p.format, "goimports", true, "format generated source with goimports")
	p.config = fs.Config()
	p.strict = fs.Strict()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.gen == "" {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -gen")
	}
	c, err := config.Find(p.gen, *p.config)
	if err != nil {
		return err
	}
	backend, ok := LookupBackend(c.Backend)
	if !ok {
		return fmt.Errorf("unknown backend %q, supported: %v", c.Backend, BackendNames())
	}
	cfg := Config{
		Package: c.Package,
		Backend: backend.With(c.Types),
		Policy:  c.Policy(),
		Format:  p.format,
	}
	if p.pkg != "" {
		cfg.Package = p.pkg
	}
	if *p.strict {
		cfg.Policy = fallback.Strict
	}

	src, err := GenerateFile(p.gen, p.out, cfg)
	if err != nil {
		eval.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	if p.out == "" {
		fmt.Fprint(fds[1], src)
	}
	return nil
}
