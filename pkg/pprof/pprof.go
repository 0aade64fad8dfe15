// Package pprof adds profiling flags to autoui.
package pprof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"src.autoui.dev/pkg/prog"
)

// Program writes CPU and heap profiles of whichever subprogram handles the
// command line. It never handles the command line itself.
type Program struct {
	cpu, heap string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.cpu, "cpuprofile", "", "write a CPU profile of the run to this file")
	fs.StringVar(&p.heap, "heapprofile", "", "write a heap profile at the end of the run to this file")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	var cleanups []func([3]*os.File)
	if p.cpu != "" {
		if f, ok := create(fds, "CPU", p.cpu); ok {
			if err := pprof.StartCPUProfile(f); err != nil {
				fmt.Fprintln(fds[2], "cannot start CPU profile:", err)
				f.Close()
			} else {
				cleanups = append(cleanups, func([3]*os.File) {
					pprof.StopCPUProfile()
					f.Close()
				})
			}
		}
	}
	if p.heap != "" {
		if f, ok := create(fds, "heap", p.heap); ok {
			cleanups = append(cleanups, func(fds [3]*os.File) {
				runtime.GC()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintln(fds[2], "cannot write heap profile:", err)
				}
				f.Close()
			})
		}
	}
	return prog.NextProgram(cleanups...)
}

func create(fds [3]*os.File, what, name string) (*os.File, bool) {
	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(fds[2], "cannot create %s profile, continuing without it: %v\n", what, err)
		return nil, false
	}
	return f, true
}
