// Package testhelpers provides shared fakes for package tests.
package testhelpers

import "sync"

// NopLogger satisfies the keysAndValues logging interface used across
// the service packages and records nothing.
type NopLogger struct{}

func (NopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (NopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (NopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (NopLogger) Error(msg string, keysAndValues ...interface{}) {}

// CaptureLogger records every message it receives, for tests that
// assert on log output.
type CaptureLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []interface{}
}

func (l *CaptureLogger) record(level, msg string, fields []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (l *CaptureLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.record("debug", msg, keysAndValues)
}

func (l *CaptureLogger) Info(msg string, keysAndValues ...interface{}) {
	l.record("info", msg, keysAndValues)
}

func (l *CaptureLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.record("warn", msg, keysAndValues)
}

func (l *CaptureLogger) Error(msg string, keysAndValues ...interface{}) {
	l.record("error", msg, keysAndValues)
}

// Messages returns the captured messages at the given level.
func (l *CaptureLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
