// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Loggers carrying a fixed set of fields.

package log

import "context"

// Logger adds a fixed set of Marshalers to every entry it writes.
//
// Fields passed to a call win over the bound ones on conflict.
type Logger struct {
	bound Many
}

// With returns a Logger bound to m.
func With(m ...Marshaler) Logger {
	return Logger{bound: Many(m)}
}

// With returns a copy of l that also carries m.
func (l Logger) With(m ...Marshaler) Logger {
	bound := make(Many, 0, len(l.bound)+len(m))
	bound = append(bound, l.bound...)
	return Logger{bound: append(bound, m...)}
}

// fields puts the bound marshalers ahead of m.
func (l Logger) fields(m []Marshaler) []Marshaler {
	out := make([]Marshaler, 0, len(l.bound)+len(m))
	out = append(out, l.bound...)
	return append(out, m...)
}

// Debug is log.Debug with the bound fields.
func (l Logger) Debug(ctx context.Context, message string, m ...Marshaler) {
	Debug(ctx, message, l.fields(m)...)
}

// Info is log.Info with the bound fields.
func (l Logger) Info(ctx context.Context, message string, m ...Marshaler) {
	Info(ctx, message, l.fields(m)...)
}

// Warn is log.Warn with the bound fields.
func (l Logger) Warn(ctx context.Context, message string, m ...Marshaler) {
	Warn(ctx, message, l.fields(m)...)
}

// Error is log.Error with the bound fields.
func (l Logger) Error(ctx context.Context, message string, m ...Marshaler) {
	Error(ctx, message, l.fields(m)...)
}
