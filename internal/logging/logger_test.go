package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return m
}

func TestZerologAdapterFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	log.Debug("probe completed",
		String("variant", "memoized"),
		Uint64("n", 40),
		Int("cache_bytes", 1200),
		Float64("seconds", 0.000123),
		Field{Key: "skipped", Value: false},
	)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["level"] != "debug" || m["message"] != "probe completed" {
		t.Errorf("unexpected level/message: %v", m)
	}
	if m["variant"] != "memoized" || m["n"] != float64(40) || m["cache_bytes"] != float64(1200) {
		t.Errorf("unexpected fields: %v", m)
	}
	if m["skipped"] != false {
		t.Errorf("bool field missing: %v", m)
	}
}

func TestZerologAdapterLevels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.WarnLevel))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("recursion limit reached", Err(errors.New("depth")))
	log.Error("sweep failed", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines at warn level, got %d: %q", len(lines), buf.String())
	}
	warn := decodeLine(t, lines[0])
	if warn["level"] != "warn" || warn["error"] != "depth" {
		t.Errorf("unexpected warn line: %v", warn)
	}
	errLine := decodeLine(t, lines[1])
	if errLine["level"] != "error" || errLine["error"] != "boom" {
		t.Errorf("unexpected error line: %v", errLine)
	}
}

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, true)
	log.Info("sweep started", Int("sizes", 3))
	log.Debug("not shown")

	out := buf.String()
	if !strings.Contains(out, "sweep started") || !strings.Contains(out, "sizes=3") {
		t.Errorf("unexpected console output: %q", out)
	}
	if strings.Contains(out, "not shown") {
		t.Error("debug message should be filtered at info level")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("noColor logger emitted ANSI codes")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", DefaultLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" INFO ", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"verbose", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	Nop().Error("ignored", errors.New("x"))
}
