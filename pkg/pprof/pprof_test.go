package pprof_test

import (
	"os"
	"testing"

	"src.autoui.dev/pkg/pprof"
	"src.autoui.dev/pkg/prog"
	. "src.autoui.dev/pkg/prog/progtest"
	"src.autoui.dev/pkg/testutil"
)

type noopProgram struct{}

func (noopProgram) RegisterFlags(*prog.FlagSet) {}

func (noopProgram) Run([3]*os.File, []string) error { return nil }

func TestProgram(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, prog.Composite(&pprof.Program{}, noopProgram{}),
		ThatAutoui("-cpuprofile", "cpu", "-heapprofile", "heap").DoesNothing(),
		ThatAutoui("-cpuprofile", "bad/path").
			WritesStderrContaining("cannot create CPU profile"),
		ThatAutoui("-heapprofile", "bad/path").
			WritesStderrContaining("cannot create heap profile"),
	)

	for _, name := range []string{"cpu", "heap"} {
		if info, err := os.Stat(name); err != nil || info.Size() == 0 {
			t.Errorf("%s profile not written", name)
		}
	}
}
