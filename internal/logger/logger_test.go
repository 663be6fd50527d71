package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
	}{
		{"console info", false, false},
		{"json debug", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.json, tt.debug)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := l.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
				t.Fatalf("debug enabled = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String(FieldAddress, "https://example.com")).Info("hello")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldAddress]; got != "https://example.com" {
		t.Fatalf("address field = %q", got)
	}

	if WithFields(nil) == nil {
		t.Fatal("expected fallback logger when nil provided")
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"abcdef", 3, "abc..."},
		{"héllo wörld", 5, "héllo..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
			t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
