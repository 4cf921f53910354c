// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Contexts whose Err reports why they were cancelled.

package orerr

import "context"

// CancelWithError returns a copy of ctx and a cancel func taking the
// error the context should report. After cancel(err), ctx.Err() returns
// err rather than context.Canceled. cancel(nil) behaves like the cancel
// func of context.WithCancel. The first call wins.
func CancelWithError(ctx context.Context) (context.Context, func(err error)) {
	inner, cancel := context.WithCancelCause(ctx)
	return causeContext{inner}, cancel
}

type causeContext struct {
	context.Context
}

// Err returns the cancellation cause once the context is done.
func (c causeContext) Err() error {
	if c.Context.Err() == nil {
		return nil
	}
	return context.Cause(c.Context)
}
