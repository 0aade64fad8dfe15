package codegen

import (
	"errors"
	"os"

	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/widget"
)

var errNoWidgets = errors.New("no widget declarations")

// GenerateFile generates the source of every widget declared in a file. If
// out is not empty, the source is also written to it.
func GenerateFile(path, out string, cfg Config) (string, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{"read", path, err}
	}
	f, err := parse.Parse(parse.Source{Name: path, Code: string(code)})
	if err != nil {
		return "", &Error{"parse", path, err}
	}
	infos, err := widget.ExtractFile(f, cfg.Policy)
	if err != nil {
		return "", &Error{"extract", path, err}
	}
	if len(infos) == 0 {
		return "", &Error{"generate", path, errNoWidgets}
	}
	src, err := GenerateWidgets(infos, cfg)
	if err != nil {
		return "", err
	}
	if out != "" {
		if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
			return "", &Error{"write", out, err}
		}
	}
	return src, nil
}
