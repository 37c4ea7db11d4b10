package logger

import "testing"

func TestNewDevelopmentDefaultsToDebug(t *testing.T) {
	l, err := New("dev", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.SugaredLogger.Desugar().Core().Enabled(-1) {
		t.Fatalf("expected debug level to be enabled in dev")
	}
}

func TestNewProductionHonoursLevel(t *testing.T) {
	l, err := New("prod", "warn")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	core := l.SugaredLogger.Desugar().Core()
	if core.Enabled(0) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !core.Enabled(1) {
		t.Fatalf("warn should be enabled at warn level")
	}
}

func TestWithKeepsLogging(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
