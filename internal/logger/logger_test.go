package logger

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestSetOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel(slog.LevelInfo)
		SetOutput(os.Stderr)
	})

	SetLevel(slog.LevelWarn)
	Info("hidden")
	Warn("shown", "file", "a.jpg")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Info record logged at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=shown file=a.jpg") {
		t.Errorf("Expected warn record, got: %s", buf.String())
	}

	buf.Reset()
	SetLevel(slog.LevelDebug)
	Debug("details")
	Error("failure")
	if !strings.Contains(buf.String(), "level=DEBUG msg=details") {
		t.Errorf("Expected debug record, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "level=ERROR msg=failure") {
		t.Errorf("Expected error record, got: %s", buf.String())
	}
}
