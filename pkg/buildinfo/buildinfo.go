// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.autoui.dev/pkg/buildinfo.VersionSuffix=value" to "go build".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/go-json-experiment/json"
	"src.autoui.dev/pkg/prog"
)

// VersionBase is the version of autoui without any suffix. On development
// commits it identifies the next release.
const VersionBase = "0.1.0"

// VersionSuffix is appended to VersionBase to build the full version string.
// When empty, a suffix is derived from the VCS information embedded by the Go
// toolchain.
var VersionSuffix = ""

// Type contains all the build information fields.
type Type struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
}

// Value contains all the build information.
var Value = Type{
	Version:   VersionBase + suffix(VersionSuffix, debug.ReadBuildInfo),
	GoVersion: runtime.Version(),
}

func suffix(override string, read func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return override
	}
	info, ok := read()
	if !ok {
		return "-dev.unknown"
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return "-dev.unknown"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	s := "-dev." + revision
	if modified {
		s += "-dirty"
	}
	return s
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(b))
}
