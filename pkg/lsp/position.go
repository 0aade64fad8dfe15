package lsp

import (
	"sort"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"

	"src.autoui.dev/pkg/diag"
)

// Converts between byte offsets and LSP positions, which count lines and
// UTF-16 code units within a line. "\n", "\r\n" and "\r" all end lines.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text, starts}
}

// Returns the end of the content of line, excluding the line terminator.
func (li *lineIndex) lineEnd(line int) int {
	if line+1 >= len(li.starts) {
		return len(li.text)
	}
	end := li.starts[line+1]
	for end > li.starts[line] && (li.text[end-1] == '\n' || li.text[end-1] == '\r') {
		end--
	}
	return end
}

func (li *lineIndex) position(idx int) lsp.Position {
	if idx > len(li.text) {
		idx = len(li.text)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > idx }) - 1
	if end := li.lineEnd(line); idx > end {
		idx = end
	}
	return lsp.Position{Line: line, Character: utf16Len(li.text[li.starts[line]:idx])}
}

func (li *lineIndex) offset(pos lsp.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(li.starts) {
		return len(li.text)
	}
	i, end := li.starts[pos.Line], li.lineEnd(pos.Line)
	for units := 0; i < end; {
		r, size := utf8.DecodeRuneInString(li.text[i:end])
		n := 1
		if r > 0xFFFF {
			n = 2
		}
		if units+n > pos.Character {
			break
		}
		units += n
		i += size
	}
	return i
}

func (li *lineIndex) lspRange(r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{Start: li.position(rg.From), End: li.position(rg.To)}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
