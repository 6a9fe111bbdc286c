package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev"} {
		if _, err := NewLogger(env, ""); err != nil {
			t.Errorf("NewLogger(%q): %v", env, err)
		}
	}
}

func TestNewLoggerLevelOverride(t *testing.T) {
	l, err := NewLogger("local", "error")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at level error")
	}

	if _, err := NewLogger("local", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), l)

	if got := FromContext(ctx); got != l {
		t.Error("context did not return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("missing logger must fall back to a no-op, not nil")
	}
}
