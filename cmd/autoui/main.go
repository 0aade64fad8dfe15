// Autoui turns Auto UI source files into running previews and Go components.
//
// Without flags it interprets a .at file and prints an outline of its main
// view. With -gen it generates a Go component; with -dev it serves a live
// preview that reloads when the file changes; with -lsp it runs a language
// server; with -state it shows persisted widget state.
package main

import (
	"os"

	"src.autoui.dev/pkg/buildinfo"
	"src.autoui.dev/pkg/codegen"
	"src.autoui.dev/pkg/devserver"
	"src.autoui.dev/pkg/lsp"
	"src.autoui.dev/pkg/outline"
	"src.autoui.dev/pkg/pprof"
	"src.autoui.dev/pkg/prog"
	"src.autoui.dev/pkg/store"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &codegen.Program{},
			&devserver.Program{}, &store.Program{}, &outline.Program{})))
}
