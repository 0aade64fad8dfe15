package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// Sink accumulates generated source: a set of imports and a body of indented
// lines. A Sink is finalized by calling Done exactly once.
type Sink struct {
	imports mapset.Set
	body    strings.Builder
	indent  int
	done    bool
}

// NewSink creates an empty Sink.
func NewSink() *Sink { return &Sink{imports: mapset.NewSet()} }

// Import adds an import path. Duplicates are ignored.
func (s *Sink) Import(path string) { s.imports.Add(path) }

// Indent increases the indentation of subsequent lines.
func (s *Sink) Indent() { s.indent++ }

// Dedent decreases the indentation of subsequent lines. It is a no-op when
// the indentation is already zero.
func (s *Sink) Dedent() {
	if s.indent > 0 {
		s.indent--
	}
}

// Depth returns the current indentation depth.
func (s *Sink) Depth() int { return s.indent }

// Line writes a line at the current indentation. An empty line is written
// without indentation.
func (s *Sink) Line(line string) {
	if line != "" {
		s.body.WriteString(strings.Repeat("\t", s.indent))
		s.body.WriteString(line)
	}
	s.body.WriteByte('\n')
}

// Linef is like Line, but formats the line first.
func (s *Sink) Linef(format string, args ...any) { s.Line(fmt.Sprintf(format, args...)) }

// Done returns the import declaration, with paths sorted, followed by the
// body. It panics if called more than once.
func (s *Sink) Done() string {
	if s.done {
		panic("codegen: Sink.Done called twice")
	}
	s.done = true

	paths := make([]string, 0, s.imports.Cardinality())
	for _, p := range s.imports.ToSlice() {
		paths = append(paths, p.(string))
	}
	sort.Strings(paths)

	var sb strings.Builder
	if len(paths) > 0 {
		sb.WriteString("import (\n")
		for _, p := range paths {
			sb.WriteString("\t" + strconv.Quote(p) + "\n")
		}
		sb.WriteString(")\n\n")
	}
	sb.WriteString(s.body.String())
	return sb.String()
}
