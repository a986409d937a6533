package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup("info", "json", &buf)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	l.WithField("session", "s1").Info("started")
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["session"] != "s1" || entry["msg"] != "started" {
		t.Errorf("entry = %v", entry)
	}
}

func TestSetup_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup("debug", "text", &buf)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", l.GetLevel())
	}
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("output = %q, want it to contain the message", buf.String())
	}
}

func TestSetup_Errors(t *testing.T) {
	if _, err := Setup("loud", "text", nil); err == nil {
		t.Error("expected error for bad level")
	}
	if _, err := Setup("info", "xml", nil); err == nil {
		t.Error("expected error for bad format")
	}
}
