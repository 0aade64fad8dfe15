// Package codegen generates Go components from widget declarations.
//
// Generation has two passes. The first collects the message identifiers
// referenced by the message properties of the view tree; the second emits,
// in order, a struct with one field per model field, a constructor, a
// message enum with one variant per collected identifier, an On method
// recovered from the is statement of the source on method, and a View method
// that builds the view tree with the view package builders.
//
// Node kinds the generator does not implement are emitted as
// /* unknown call */ comments rather than failing the generation.
package codegen

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"src.autoui.dev/pkg/convert"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/logutil"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/widget"
)

var logger = logutil.GetLogger("[codegen] ")

// ViewPackage is the import path of the view package used by generated code.
const ViewPackage = "src.autoui.dev/pkg/view"

// Header is the first line of generated source.
const Header = "// Code generated by autoui. DO NOT EDIT."

// Config keeps configuration for code generation.
type Config struct {
	// Package clause of the generated source; "main" if empty.
	Package string
	// Type map; GoBackend if its Name is empty.
	Backend Backend
	// Policy for widget extraction in GenerateFile.
	Policy fallback.Policy
	// Whether to pass the generated source through goimports.
	Format bool
}

func (cfg Config) pkg() string {
	if cfg.Package == "" {
		return "main"
	}
	return cfg.Package
}

func (cfg Config) backend() Backend {
	if cfg.Backend.Name == "" {
		return GoBackend
	}
	return cfg.Backend
}

// Error is a code generation failure.
type Error struct {
	// One of "read", "parse", "extract", "generate", "format" and "write".
	Op string
	// File or widget name.
	Name string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// GenerateWidget generates the source of a single widget, with the message
// enum named Msg.
func GenerateWidget(info *widget.Info, cfg Config) (string, error) {
	sink := NewSink()
	if err := generate(sink, info, "Msg", cfg.backend()); err != nil {
		return "", err
	}
	return finish(info.Name, sink, cfg)
}

// GenerateWidgets generates the source of several widgets as one unit. With
// more than one widget, each message enum is named after its widget, like
// CounterMsg.
func GenerateWidgets(infos []*widget.Info, cfg Config) (string, error) {
	sink := NewSink()
	for _, info := range infos {
		msgType := "Msg"
		if len(infos) > 1 {
			msgType = info.Name + "Msg"
		}
		if err := generate(sink, info, msgType, cfg.backend()); err != nil {
			return "", err
		}
	}
	return finish(cfg.pkg(), sink, cfg)
}

func finish(name string, sink *Sink, cfg Config) (string, error) {
	src := Header + "\n\npackage " + cfg.pkg() + "\n\n" + strings.TrimRight(sink.Done(), "\n") + "\n"
	if !cfg.Format {
		return src, nil
	}
	formatted, err := imports.Process("", []byte(src), nil)
	if err != nil {
		return "", &Error{"format", name, err}
	}
	return string(formatted), nil
}

// Message identifiers collected from a view tree.
type symbols struct {
	msgType  string
	variants mapset.Set
}

// Collects the identifiers of the messages referenced by message properties.
func collect(root *vals.Node, msgType string) *symbols {
	sy := &symbols{msgType: msgType, variants: mapset.NewSet()}
	root.Walk(func(n *vals.Node) bool {
		for name, v := range n.Props {
			if id, ok := v.(string); ok && convert.IsMessageProp(name) && id != "" {
				sy.variants.Add(variantName(id))
			}
		}
		return true
	})
	return sy
}

// Returns an error if two variants map to the same constant name.
func (sy *symbols) check() error {
	seen := make(map[string]string)
	for _, v := range sy.sorted() {
		c := exportName(v)
		if prev, ok := seen[c]; ok {
			return fmt.Errorf("messages %s and %s both become %s%s", prev, v, sy.msgType, c)
		}
		seen[c] = v
	}
	return nil
}

// Returns the variant names, sorted.
func (sy *symbols) sorted() []string {
	names := make([]string, 0, sy.variants.Cardinality())
	for _, v := range sy.variants.ToSlice() {
		names = append(names, v.(string))
	}
	sort.Strings(names)
	return names
}

// Returns the name of the constant for a message identifier, if the
// identifier was collected.
func (sy *symbols) constant(id string) (string, bool) {
	v := variantName(id)
	if !sy.variants.Contains(v) {
		return "", false
	}
	return sy.msgType + exportName(v), true
}

// Strips the enum name from a message identifier: Msg.Inc is variant Inc.
func variantName(id string) string {
	if _, after, ok := strings.Cut(id, "."); ok {
		return after
	}
	return id
}

var title = cases.Title(language.Und, cases.NoLower)

// Turns a source name into an exported Go identifier: set_value and
// set.value both become SetValue.
func exportName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' '
	})
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(title.String(p))
	}
	name := sb.String()
	if name == "" || !token.IsIdentifier(name) {
		return "X" + name
	}
	return name
}

// Turns a source name into an unexported Go identifier.
func localName(s string) string {
	if token.IsKeyword(s) {
		return s + "_"
	}
	return s
}

type generator struct {
	sink    *Sink
	backend Backend
	info    *widget.Info
	sy      *symbols
	fields  map[string]bool
	// Names of locals in scope, mapped to their Go expressions.
	locals map[string]string
}

func generate(sink *Sink, info *widget.Info, msgType string, backend Backend) error {
	fields := make(map[string]bool)
	for _, f := range info.Model.Fields {
		if fields[f.Name] {
			return &Error{"generate", info.Name, fmt.Errorf("duplicate field %s", f.Name)}
		}
		fields[f.Name] = true
	}
	sy := collect(info.View.Root, msgType)
	if err := sy.check(); err != nil {
		return &Error{"generate", info.Name, err}
	}
	g := &generator{
		sink: sink, backend: backend, info: info, fields: fields,
		sy: sy, locals: map[string]string{},
	}
	logger.Printf("generating %s with %d fields and %d messages",
		info.Name, len(info.Model.Fields), g.sy.variants.Cardinality())
	sink.Import("fmt")
	sink.Import(ViewPackage)
	g.writeStruct()
	g.writeEnum()
	g.writeOn()
	g.writeView()
	sink.Linef("var _ view.Component[%s] = (*%s)(nil)", msgType, info.Name)
	sink.Line("")
	return nil
}

func (g *generator) writeStruct() {
	s, name := g.sink, g.info.Name
	var params, inits []string
	s.Linef("// %s is generated from the %s widget.", name, name)
	s.Linef("type %s struct {", name)
	s.Indent()
	for _, f := range g.info.Model.Fields {
		id := localName(f.Name)
		typ := g.backend.Type(f.Type)
		s.Linef("%s %s", id, typ)
		params = append(params, id+" "+typ)
		inits = append(inits, id+": "+id)
	}
	s.Dedent()
	s.Line("}")
	s.Line("")

	s.Linef("// New%s creates a %s.", name, name)
	s.Linef("func New%s(%s) *%s {", name, strings.Join(params, ", "), name)
	s.Indent()
	s.Linef("return &%s{%s}", name, strings.Join(inits, ", "))
	s.Dedent()
	s.Line("}")
	s.Line("")
}

func (g *generator) writeEnum() {
	s, m := g.sink, g.sy.msgType
	variants := g.sy.sorted()
	s.Linef("// %s is a message of %s.", m, g.info.Name)
	s.Linef("type %s int", m)
	s.Line("")
	if len(variants) > 0 {
		s.Line("const (")
		s.Indent()
		for i, v := range variants {
			if i == 0 {
				s.Linef("%s%s %s = iota", m, exportName(v), m)
			} else {
				s.Line(m + exportName(v))
			}
		}
		s.Dedent()
		s.Line(")")
		s.Line("")
	}
	s.Linef("func (m %s) String() string {", m)
	s.Indent()
	s.Line("switch m {")
	for _, v := range variants {
		s.Linef("case %s%s:", m, exportName(v))
		s.Indent()
		s.Linef("return %q", v)
		s.Dedent()
	}
	s.Line("}")
	s.Linef("return fmt.Sprintf(\"%s(%%d)\", int(m))", m)
	s.Dedent()
	s.Line("}")
	s.Line("")
}
