// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Error helpers shared by the shuffler and its hosts.

// Package orerr implements error utilities: sentinel constants, errors
// that carry log fields, and shutdown errors for context cancellation.
package orerr

import (
	"errors"

	"github.com/getoutreach/testshuffle/pkg/log"
)

// A SentinelError is a constant which ought to be compared using errors.Is.
type SentinelError string

// Error returns s as a string.
func (s SentinelError) Error() string {
	return string(s)
}

// ShutdownError incidates the process is shutting down. An inner
// error may be provided via Err.
type ShutdownError struct {
	Err error
}

// Error implements the err interface.
func (e ShutdownError) Error() string {
	return "process has shutdown"
}

// Unwrap returns the inner error.
func (e ShutdownError) Unwrap() error {
	return e.Err
}

// Info adds extra logging info to an error.
func Info(err error, info ...log.Marshaler) error {
	return withInfo{err, log.Many(info)}
}

// withInfo just embeds error and log.Marshaler, so both interface are
// satisfied.
type withInfo struct {
	error
	log.Marshaler
}

// Unwrap returns the underlying error.
// This method is required by errors.Unwrap.
func (e withInfo) Unwrap() error {
	return e.error
}

// Fields collects the log fields attached with Info anywhere in the
// error chain. Outer fields win over inner ones.
func Fields(err error) log.F {
	f := log.F{}
	var chain []log.Marshaler
	for ; err != nil; err = errors.Unwrap(err) {
		if wi, ok := err.(withInfo); ok { //nolint:errorlint // Why: walking the chain manually
			chain = append(chain, wi.Marshaler)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].MarshalLog(f.Set)
	}
	return f
}

// IsOneOf returns true if the supplied error is identical to an error supplied
// in the remaining function error arguments
func IsOneOf(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
