//nolint:testpackage // Testing internal logging requires same package access
package logging

import (
	"testing"

	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
)

type capturedEntry struct {
	level  string
	msg    string
	fields []infralogger.Field
}

type captureInfraLogger struct {
	entries []capturedEntry
}

func (l *captureInfraLogger) Debug(msg string, fields ...infralogger.Field) {
	l.entries = append(l.entries, capturedEntry{"debug", msg, fields})
}

func (l *captureInfraLogger) Info(msg string, fields ...infralogger.Field) {
	l.entries = append(l.entries, capturedEntry{"info", msg, fields})
}

func (l *captureInfraLogger) Warn(msg string, fields ...infralogger.Field) {
	l.entries = append(l.entries, capturedEntry{"warn", msg, fields})
}

func (l *captureInfraLogger) Error(msg string, fields ...infralogger.Field) {
	l.entries = append(l.entries, capturedEntry{"error", msg, fields})
}

func (l *captureInfraLogger) Fatal(msg string, fields ...infralogger.Field) {
	l.entries = append(l.entries, capturedEntry{"fatal", msg, fields})
}

func (l *captureInfraLogger) With(_ ...infralogger.Field) infralogger.Logger { return l }

func (l *captureInfraLogger) Sync() error { return nil }

func TestAdapter_LevelRouting(t *testing.T) {
	t.Helper()

	capture := &captureInfraLogger{}
	adapter := NewAdapter(capture)

	adapter.Debug("d")
	adapter.Info("i")
	adapter.Warn("w")
	adapter.Error("e")

	want := []string{"debug", "info", "warn", "error"}
	if len(capture.entries) != len(want) {
		t.Fatalf("entries: got %d, want %d", len(capture.entries), len(want))
	}
	for i, level := range want {
		if capture.entries[i].level != level {
			t.Errorf("entry %d level: got %s, want %s", i, capture.entries[i].level, level)
		}
	}
}

func TestToFields(t *testing.T) {
	t.Helper()

	tests := []struct {
		name          string
		keysAndValues []any
		wantKeys      []string
	}{
		{"simple pairs", []any{"student_id", "STU-001", "count", 3}, []string{"student_id", "count"}},
		{"trailing value dropped", []any{"student_id", "STU-001", "dangling"}, []string{"student_id"}},
		{"non-string key skipped", []any{42, "value", "ok", true}, []string{"ok"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := toFields(tt.keysAndValues)
			if len(fields) != len(tt.wantKeys) {
				t.Fatalf("fields: got %d, want %d", len(fields), len(tt.wantKeys))
			}
			for i, key := range tt.wantKeys {
				if fields[i].Key != key {
					t.Errorf("field %d key: got %s, want %s", i, fields[i].Key, key)
				}
			}
		})
	}
}
