package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	defer SetOutput(io.Discard)
	logger := GetLogger("[test] ")
	logger.Println("dropped")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Println("kept")
	GetLogger("[later] ").Println("also kept")

	got := buf.String()
	if strings.Contains(got, "dropped") {
		t.Errorf("logged before SetOutput: %q", got)
	}
	if !strings.Contains(got, "[test] ") || !strings.Contains(got, "kept") {
		t.Errorf("missing message: %q", got)
	}
	if !strings.Contains(got, "[later] ") {
		t.Errorf("logger created after SetOutput not redirected: %q", got)
	}
}

func TestSetOutputFile(t *testing.T) {
	defer SetOutput(io.Discard)
	name := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(name); err != nil {
		t.Fatal(err)
	}
	GetLogger("[file] ").Println("hello")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[file] ") {
		t.Errorf("log file content %q", data)
	}
	if err := SetOutputFile(filepath.Join(name, "bad")); err == nil {
		t.Errorf("no error for a bad path")
	}
}
