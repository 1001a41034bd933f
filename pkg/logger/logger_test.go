package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerWritesFields(t *testing.T) {
	SetLevel(slog.LevelInfo)
	var buf bytes.Buffer
	log := New(&buf).Named("review")

	log.Info(context.Background(), "card rated", String("card_id", "c1"), Int("interval", 6), Error(errors.New("boom")))

	out := buf.String()
	for _, want := range []string{"card rated", "component=review", "card_id=c1", "interval=6", "error=boom", "source="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	if err := SetLevelString("warn"); err != nil {
		t.Fatal(err)
	}
	defer SetLevel(slog.LevelInfo)

	log.Info(context.Background(), "hidden")
	log.Debug(context.Background(), "hidden too")
	log.Warn(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info/debug to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn output, got %q", out)
	}
}

func TestSetLevelString_Unknown(t *testing.T) {
	if err := SetLevelString("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNop(t *testing.T) {
	Nop().Error(context.Background(), "dropped", String("k", "v"))
}
