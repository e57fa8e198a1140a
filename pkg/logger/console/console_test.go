package console

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf, NoTimestamp: true})

	l.Debug("[Test] hidden")
	l.Info("[Test] shown", "id", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "[Test] shown") || !strings.Contains(out, "id=7") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConsoleLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf, Debug: true, NoTimestamp: true})

	l.Debug("[Test] visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestConsoleLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf, JSON: true, NoTimestamp: true})

	l.Warn("[Test] structured", "proband", 3)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "[Test] structured" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["proband"] != float64(3) {
		t.Fatalf("unexpected proband: %v", entry["proband"])
	}
}
