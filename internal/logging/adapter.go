// Package logging bridges the zap-backed infra logger to the loose
// keysAndValues logging surface the riskcore service packages share.
// Each of them (scoring, chat, processor, notify, api) declares the same
// minimal four-level interface locally; one adapter serves them all.
package logging

import (
	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
)

// Adapter converts keysAndValues pairs into typed infra logger fields.
type Adapter struct {
	log infralogger.Logger
}

// NewAdapter wraps an infra logger for use by the service packages.
func NewAdapter(log infralogger.Logger) *Adapter {
	return &Adapter{log: log}
}

// Debug logs at debug level.
func (a *Adapter) Debug(msg string, keysAndValues ...any) {
	a.log.Debug(msg, toFields(keysAndValues)...)
}

// Info logs at info level.
func (a *Adapter) Info(msg string, keysAndValues ...any) {
	a.log.Info(msg, toFields(keysAndValues)...)
}

// Warn logs at warning level.
func (a *Adapter) Warn(msg string, keysAndValues ...any) {
	a.log.Warn(msg, toFields(keysAndValues)...)
}

// Error logs at error level.
func (a *Adapter) Error(msg string, keysAndValues ...any) {
	a.log.Error(msg, toFields(keysAndValues)...)
}

// toFields pairs up keysAndValues into structured fields. A trailing
// value without a key, or a key that is not a string, is dropped rather
// than corrupting the surrounding pairs.
func toFields(keysAndValues []any) []infralogger.Field {
	fields := make([]infralogger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, infralogger.Any(key, keysAndValues[i+1]))
	}
	return fields
}
