package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("resolved") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("resolved") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("resolved") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("overflow", "type", "DI") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("expected output %v, got %v (%q)", tt.want, got, buf.String())
			}
		})
	}
}

func TestNewLoggerKeyValues(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("resolved plc rows", "rows", 12, "dropped", 0)

	out := buf.String()
	for _, want := range []string{"resolved plc rows", "rows=12", "dropped=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Traced drawing.json")

	out := buf.String()
	if !strings.Contains(out, "Traced drawing.json (") {
		t.Errorf("expected message with elapsed time, got %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected log.Default() without an attached logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("expected the attached logger")
	}
}

func TestRootAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path"})
	root.SetOut(&bytes.Buffer{})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	cmd, _, _ := root.Find([]string{"cache", "path"})
	if loggerFromContext(cmd.Context()) != c.Logger {
		t.Error("subcommands should see the CLI logger in their context")
	}
}
