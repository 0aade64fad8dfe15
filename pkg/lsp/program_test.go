package lsp_test

import (
	"testing"

	"src.autoui.dev/pkg/lsp"
	. "src.autoui.dev/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, &lsp.Program{},
		ThatAutoui("-lsp").DoesNothing(),
		ThatAutoui("-lsp", "x").
			ExitsWith(2).WritesStderrContaining("arguments are not allowed with -lsp"),
	)
}
