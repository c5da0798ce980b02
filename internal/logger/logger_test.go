package logger

import (
	"bytes"
	"strings"
	"testing"
)

// resetLogger resets the logger to default state for test isolation
func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevel_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("test info")
	if !strings.Contains(buf.String(), "test info") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()

	Debug("test debug")
	if strings.Contains(buf.String(), "test debug") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("test debug message")
	if !strings.Contains(buf.String(), "test debug message") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestInit_QuietLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Info("test info")
	if strings.Contains(buf.String(), "test info") {
		t.Error("Info message should not be logged when Quiet=true")
	}

	Error("test error")
	if !strings.Contains(buf.String(), "test error") {
		t.Error("Error message should still be logged when Quiet=true")
	}
}

func TestInit_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("json message", "key", "value")
	out := buf.String()
	if !strings.Contains(out, `"msg":"json message"`) {
		t.Errorf("expected JSON formatted output, got %q", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected attribute in JSON output, got %q", out)
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	l := With("component", "indexer")
	l.Info("scoped message")
	if !strings.Contains(buf.String(), "component=indexer") {
		t.Errorf("expected scoped attribute, got %q", buf.String())
	}
}
