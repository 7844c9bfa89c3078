package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newBufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(level)
	l.SetOutput(&buf)
	l.EnableColors(false)
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"", INFO, false},
		{"warning", WARN, false},
		{" error ", ERROR, false},
		{"fatal", FATAL, false},
		{"verbose", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if level != tt.expected {
				t.Errorf("Expected level %d, got %d", tt.expected, level)
			}
		})
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	l, buf := newBufferLogger("warn")

	l.Debugf("debug %d", 1)
	l.Info("info")
	l.Printf("printf %s\n", "line")
	l.Warnf("warn %d", 2)
	l.Error("error")

	out := buf.String()
	for _, unwanted := range []string{"debug 1", "info", "printf line"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("Output should not contain %q:\n%s", unwanted, out)
		}
	}
	for _, wanted := range []string{"[WARN ]", "warn 2", "[ERROR]", "error"} {
		if !strings.Contains(out, wanted) {
			t.Errorf("Output should contain %q:\n%s", wanted, out)
		}
	}
}

func TestLoggerPrefixNamesCaller(t *testing.T) {
	l, buf := newBufferLogger("debug")

	l.Printf("Rendering %dx%d\n", 4, 3)

	out := buf.String()
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("Expected caller file in prefix, got %q", out)
	}
	if !strings.Contains(out, "[INFO ]") || !strings.Contains(out, "Rendering 4x3") {
		t.Errorf("Unexpected line %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Printf should not produce blank lines, got %q", out)
	}
}

func TestLoggerColors(t *testing.T) {
	l, buf := newBufferLogger("info")
	l.EnableColors(true)

	l.Error("boom")
	if !strings.Contains(buf.String(), "\033[31m") {
		t.Errorf("Expected red escape code, got %q", buf.String())
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "render.log")

	l, err := NewFileLogger("info", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	l.Info("to file")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("Log file missing message: %q", data)
	}
	if strings.Contains(string(data), "\033[") {
		t.Error("File output should not be colored")
	}
}
