package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLoggerCarriesJobContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("demo-print").WithOutput(&buf)

	l.Info("estimation complete", zap.Float64("frames", 42))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["job"] != "demo-print" {
		t.Errorf("job = %v, want demo-print", entry["job"])
	}
	if entry["message"] != "estimation complete" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["frames"] != 42.0 {
		t.Errorf("frames = %v, want 42", entry["frames"])
	}
}

func TestWithOutputKeepsJobAfterCoreSwap(t *testing.T) {
	var first, second bytes.Buffer
	l := NewLogger("swap").WithOutput(&first).WithOutput(&second)

	l.Warn("redirected")

	var entry map[string]any
	if err := json.Unmarshal(second.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, second.String())
	}
	if entry["job"] != "swap" {
		t.Errorf("job = %v, want swap", entry["job"])
	}
	if first.Len() != 0 {
		t.Errorf("first writer should receive nothing after redirect: %q", first.String())
	}
}

func TestSugaredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("demo").WithOutput(&buf)

	l.Sugar().Infof("sliced %d layers", 7)

	if !strings.Contains(buf.String(), "sliced 7 layers") {
		t.Errorf("sugared output missing message: %q", buf.String())
	}
}
