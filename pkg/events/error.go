// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides capabilities for logging error events

// Package events defines the standard logging event structures
package events

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/getoutreach/testshuffle/pkg/log"
)

// ErrorInfo tracks the error info for logging purposes.
type ErrorInfo struct {
	RawError error
	Kind     string
	Error    string
	Message  string
	Stack    []string
	Cause    *ErrorInfo
	Custom   log.Marshaler
}

// MarshalLog implements log.Marshaler. Nested causes are emitted without
// the error. prefix so that "error.cause.message" reads naturally.
func (e *ErrorInfo) MarshalLog(addField func(key string, value interface{})) {
	if e == nil {
		return
	}
	e.marshal("error.", addField)
}

func (e *ErrorInfo) marshal(prefix string, addField func(key string, value interface{})) {
	addField(prefix+"kind", e.Kind)
	if e.Error != "" {
		addField(prefix+"error", e.Error)
	}
	addField(prefix+"message", e.Message)
	if len(e.Stack) > 0 {
		addField(prefix+"stack", strings.Join(e.Stack, "\n\t"))
	}
	if e.Cause != nil {
		e.Cause.marshal(prefix+"cause.", addField)
	}
	if e.Custom != nil {
		e.Custom.MarshalLog(addField)
	}
}

func (e *ErrorInfo) pureStack() bool {
	return e.Message == "" && len(e.Stack) > 0 && e.Custom == nil
}

func (e *ErrorInfo) pureMessage() bool {
	return e.Message != "" && len(e.Stack) == 0 && e.Custom == nil
}

// Err is a convenience method for logging. It lazily yields the result of
// NewErrorInfo when logged, and caches it for future use.
func Err(err error) *LazyErrInfo {
	return &LazyErrInfo{err: err}
}

// LazyErrInfo holds an unserialized error and marshals it on-demand.
type LazyErrInfo struct {
	err  error
	info *ErrorInfo
	once sync.Once
}

// ErrorInfo returns the cached ErrorInfo, computing it on first use.
func (l *LazyErrInfo) ErrorInfo() *ErrorInfo {
	l.once.Do(func() {
		l.info = NewErrorInfo(l.err)
	})
	return l.info
}

func (l *LazyErrInfo) MarshalLog(addField func(field string, value interface{})) {
	l.ErrorInfo().MarshalLog(addField)
}

// NewErrorInfo converts an error into ErrorInfo meant for logging.
//
// In the case of errors wrapped with github.com/pkg/errors.Wrap, NewErrorInfo
// will attempt to collapse (message, stack) pairs within the error stack into
// a single level of the error.
func NewErrorInfo(err error) *ErrorInfo {
	info := newInfo(err, "error")
	if info != nil {
		info.Error = err.Error()
	}
	return info
}

func newInfo(err error, kind string) *ErrorInfo {
	if err == nil {
		return nil
	}
	custom, _ := err.(log.Marshaler) //nolint:errorlint // Why: only the outermost marshaler is wanted
	info := ErrorInfo{
		RawError: err,
		Kind:     kind,
		Message:  errMessage(err),
		Stack:    errStack(err),
		Custom:   custom,
	}
	if cause := newInfo(errors.Unwrap(err), "cause"); cause != nil {
		if info.pureStack() && cause.pureMessage() {
			info.Message = cause.Message
			info.Cause = cause.Cause
		} else {
			info.Cause = cause
		}
	}
	return &info
}

func errMessage(err error) string {
	full := err.Error()
	var sub string
	if err = errors.Unwrap(err); err != nil {
		sub = err.Error()
	}
	return strings.TrimSuffix(strings.TrimSuffix(full, sub), ": ")
}

func errStack(err error) []string {
	// github.com/pkg/errors implements the tracer interface
	type tracer interface {
		StackTrace() errors.StackTrace
	}

	t, ok := err.(tracer) //nolint:errorlint // Why: each level reports its own stack
	if !ok {
		return nil
	}

	stack := make([]string, 0, len(t.StackTrace()))
	for _, frame := range t.StackTrace() {
		// frames are acquired by runtime.Callers, so frame = pc + 1
		pc := uintptr(frame) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line := fn.FileLine(pc)
		stack = append(stack, fmt.Sprintf("%s:%d `%s`", file, line, shortName(fn.Name())))
	}
	return trimRuntime(stack)
}

func shortName(funcname string) string {
	if i := strings.LastIndex(funcname, "/"); i != -1 {
		funcname = funcname[i+1:]
	}
	return funcname
}

func trimRuntime(stack []string) []string {
	for i := range stack {
		end := len(stack) - 1 - i
		if !strings.Contains(stack[end], "`runtime.") && !strings.Contains(stack[end], "`testing.") {
			return stack[:end+1]
		}
	}
	return stack
}
