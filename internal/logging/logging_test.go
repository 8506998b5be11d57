package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("webapi", "debug", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug enabled")
	}

	l, err = New("webapi", "warn", "console")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info disabled at warn level")
	}
}

func TestNew_RejectsBadInput(t *testing.T) {
	if _, err := New("webapi", "loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New("webapi", "info", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
