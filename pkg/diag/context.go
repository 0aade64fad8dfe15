package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Context is a range of a named source text, such as the location of an error.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line, Col int
}

// Position returns the position of the start of the range.
func (c *Context) Position() Position { return positionOf(c.Source, c.From) }

// EndPosition returns the position of the end of the range.
func (c *Context) EndPosition() Position { return positionOf(c.Source, c.To) }

func positionOf(s string, idx int) Position {
	if idx > len(s) {
		idx = len(s)
	}
	if idx < 0 {
		idx = 0
	}
	before := s[:idx]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{line, len([]rune(before[lineStart:])) + 1}
}

// Describe returns "name:line:col".
func (c *Context) Describe() string {
	p := c.Position()
	return fmt.Sprintf("%s:%d:%d", c.Name, p.Line, p.Col)
}

// Show shows the context as its description, followed by the first source
// line of the range and a line of carets under the range. Every line after
// the first is prefixed with indent.
func (c *Context) Show(indent string) string {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Sprintf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	lineStart := strings.LastIndexByte(c.Source[:c.From], '\n') + 1
	lineEnd := strings.IndexByte(c.Source[c.From:], '\n')
	if lineEnd == -1 {
		lineEnd = len(c.Source)
	} else {
		lineEnd += c.From
	}
	culpritEnd := c.To
	if culpritEnd > lineEnd {
		culpritEnd = lineEnd
	}
	head := c.Source[lineStart:c.From]
	carets := runewidth.StringWidth(c.Source[c.From:culpritEnd])
	if carets == 0 {
		carets = 1
	}
	var sb strings.Builder
	sb.WriteString(c.Describe())
	sb.WriteString("\n" + indent + c.Source[lineStart:lineEnd])
	sb.WriteString("\n" + indent + strings.Repeat(" ", runewidth.StringWidth(head)))
	sb.WriteString(strings.Repeat("^", carets))
	return sb.String()
}
