// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	current *os.File
	loggers []*log.Logger
	mu      sync.Mutex
)

// GetLogger gets a logger with the given prefix. All loggers share one
// output, which discards everything until SetOutput or SetOutputFile is called.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger,
// including future ones.
func SetOutput(newOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeCurrent()
	setOutput(newOut)
}

// SetOutputFile redirects the output of all loggers to the named file,
// truncating it first. An empty name discards all output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	closeCurrent()
	current = file
	setOutput(file)
	return nil
}

func closeCurrent() {
	if current != nil {
		current.Close()
		current = nil
	}
}

func setOutput(newOut io.Writer) {
	out = newOut
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
