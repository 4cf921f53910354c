// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: See package comment

// Package cli contains utilities for running urfave/cli applications
// in the testshuffle binaries.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/getoutreach/testshuffle/pkg/app"
	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/orerr"
)

// NewLogger returns the logger used for user facing messages. Output is
// human readable on a terminal and JSON otherwise.
func NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	var isTerm bool
	if f, ok := w.(*os.File); ok {
		isTerm = term.IsTerminal(int(f.Fd()))
	}
	if isTerm {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// HookInUrfaveCLI runs a with os.Args and exits the process with the
// resulting exit code. The context is cancelled with an
// orerr.ShutdownError on ^C and other term signals.
func HookInUrfaveCLI(ctx context.Context, a *cli.App, logger logrus.FieldLogger) {
	app.SetName(a.Name)

	// Ensure that we don't use the structured logger on a terminal
	log.SetOutput(io.Discard)

	ctx, cancel := orerr.CancelWithError(ctx)
	defer cancel(nil)

	// Cancel the context on ^C and other signals
	urfaveRegisterShutdownHandler(cancel)

	exitCode, exit := setupExitHandler()
	defer exit()

	// Print a stack trace when a panic occurs and set the exit code
	defer setupPanicHandler(exitCode)

	*exitCode = RunContext(ctx, a, os.Args, logger)
}

// RunContext runs a with args and returns the process exit code.
// Failures are reported through logger.
func RunContext(ctx context.Context, a *cli.App, args []string, logger logrus.FieldLogger) int {
	exitCode := 0
	prev := cli.OsExiter
	cli.OsExiter = func(code int) { exitCode = code }
	defer func() { cli.OsExiter = prev }()

	if err := a.RunContext(ctx, args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode()
		}
		logger.Errorf("failed to run: %v", err)
		return 1
	}
	return exitCode
}
