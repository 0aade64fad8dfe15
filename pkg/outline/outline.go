// Package outline renders View trees as indented text outlines.
//
// Each view is shown on its own line as its kind followed by its content and
// non-zero attributes, with children indented by two spaces. Messages are
// shown after an arrow; for views whose message depends on the event (such as
// an input), the message produced by the zero event is shown.
package outline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"src.autoui.dev/pkg/view"
)

// String returns the outline of a view.
func String[M any](v view.View[M]) string {
	var sb strings.Builder
	Write(&sb, v)
	return sb.String()
}

// Write writes the outline of a view to w.
func Write[M any](w io.Writer, v view.View[M]) error {
	ow := &writer{w: w}
	write(ow, v, 0)
	return ow.err
}

type writer struct {
	w   io.Writer
	err error
}

func (ow *writer) line(depth int, s string) {
	if ow.err != nil {
		return
	}
	_, ow.err = fmt.Fprintf(ow.w, "%s%s\n", strings.Repeat("  ", depth), s)
}

func write[M any](ow *writer, v view.View[M], depth int) {
	if v == nil {
		ow.line(depth, "<nil>")
		return
	}
	ow.line(depth, describe(v))
	switch v := v.(type) {
	case *view.Table[M]:
		for i, row := range v.Rows {
			ow.line(depth+1, "row "+strconv.Itoa(i))
			for _, cell := range row {
				write(ow, cell, depth+2)
			}
		}
		return
	case *view.Tabs[M]:
		for i, content := range v.Contents {
			label := ""
			if i < len(v.Labels) {
				label = v.Labels[i]
			}
			ow.line(depth+1, "tab "+strconv.Quote(label))
			write(ow, content, depth+2)
		}
		return
	case *view.Accordion[M]:
		for _, item := range v.Items {
			ow.line(depth+1, attrs("item "+strconv.Quote(item.Title), flag("expanded", item.Expanded)))
			write(ow, item.Content, depth+2)
		}
		return
	}
	for _, child := range view.Children(v) {
		write(ow, child, depth+1)
	}
}

func describe[M any](v view.View[M]) string {
	kind := v.Kind().String()
	switch v := v.(type) {
	case *view.Text[M]:
		return attrs(kind+" "+strconv.Quote(v.Content), num("size", v.Size), str("style", v.Style))
	case *view.Button[M]:
		return attrs(kind+" "+strconv.Quote(v.Label), str("style", v.Style)) + arrow(v.OnClick)
	case *view.Input[M]:
		return attrs(kind+" "+strconv.Quote(v.Value), str("placeholder", v.Placeholder),
			flag("password", v.Password)) + arrowFunc(v.OnChange)
	case *view.Checkbox[M]:
		return attrs(kind+" "+strconv.Quote(v.Label), flag("checked", v.Checked)) + arrowFunc(v.OnToggle)
	case *view.Radio[M]:
		return attrs(kind+" "+strconv.Quote(v.Label), flag("selected", v.Selected)) + arrow(v.OnSelect)
	case *view.Select[M]:
		quoted := make([]string, len(v.Options))
		for i, o := range v.Options {
			quoted[i] = strconv.Quote(o)
		}
		return attrs(kind+" ["+strings.Join(quoted, " ")+"]", str("selected", v.Selected)) +
			arrowFunc(v.OnSelect)
	case *view.Slider[M]:
		return attrs(kind, "min="+formatFloat(v.Min), "max="+formatFloat(v.Max),
			"value="+formatFloat(v.Value), floatAttr("step", v.Step)) + arrowFunc(v.OnChange)
	case *view.Col[M]:
		return attrs(kind, num("spacing", v.Spacing), num("padding", v.Padding), align(v.Align))
	case *view.Row[M]:
		return attrs(kind, num("spacing", v.Spacing), num("padding", v.Padding), align(v.Align))
	case *view.Container[M]:
		return attrs(kind, num("padding", v.Padding), num("width", v.Width), num("height", v.Height),
			flag("centered", v.Centered), str("style", v.Style))
	case *view.Scrollable[M]:
		return attrs(kind, num("height", v.Height))
	case *view.List[M]:
		return attrs(kind, num("spacing", v.Spacing))
	case *view.Table[M]:
		quoted := make([]string, len(v.Headers))
		for i, h := range v.Headers {
			quoted[i] = strconv.Quote(h)
		}
		header := ""
		if len(quoted) > 0 {
			header = "headers=[" + strings.Join(quoted, " ") + "]"
		}
		return attrs(kind, header, num("spacing", v.Spacing))
	case *view.Tabs[M]:
		return attrs(kind, "selected="+strconv.Itoa(v.Selected)) + arrowFunc(v.OnSelect)
	case *view.Accordion[M]:
		return kind + arrowFunc(v.OnToggle)
	case *view.NavigationRail[M]:
		labels := make([]string, len(v.Items))
		for i, item := range v.Items {
			labels[i] = strconv.Quote(item.Label)
		}
		return attrs(kind+" ["+strings.Join(labels, " ")+"]", "selected="+strconv.Itoa(v.Selected)) +
			arrowFunc(v.OnSelect)
	case *view.Sidebar[M]:
		return attrs(kind, num("width", v.Width), flag("open", v.Open)) + arrow(v.OnToggle)
	}
	return kind
}

// Joins non-empty parts with spaces.
func attrs(head string, parts ...string) string {
	s := head
	for _, p := range parts {
		if p != "" {
			s += " " + p
		}
	}
	return s
}

func num(name string, n int) string {
	if n == 0 {
		return ""
	}
	return name + "=" + strconv.Itoa(n)
}

func floatAttr(name string, f float64) string {
	if f == 0 {
		return ""
	}
	return name + "=" + formatFloat(f)
}

func str(name, s string) string {
	if s == "" {
		return ""
	}
	return name + "=" + strconv.Quote(s)
}

func flag(name string, b bool) string {
	if !b {
		return ""
	}
	return name
}

func align(a view.Align) string {
	if a == view.AlignStart {
		return ""
	}
	return "align=" + a.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func arrow[M any](msg M) string {
	s := fmt.Sprint(msg)
	if s == "" {
		return ""
	}
	return " -> " + s
}

func arrowFunc[T, M any](f func(T) M) string {
	if f == nil {
		return ""
	}
	var zero T
	return arrow(f(zero))
}
