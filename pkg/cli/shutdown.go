// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains shutdown related code for CLIs.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/orerr"
)

// urfaveRegisterShutdownHandler registers a signal notifier that translates various term
// signals into context cancel
func urfaveRegisterShutdownHandler(cancel func(error)) {
	// handle ^C gracefully
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-c
		signal.Reset()
		cancel(orerr.ShutdownError{Err: fmt.Errorf("received %s", sig)})
	}()
}

// setupPanicHandler sets up a panic handler that will print the panic message
// and stack trace to stderr, and then set the exit code to 2.
func setupPanicHandler(exitCode *int) {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "stacktrace from panic: %s\n%s\n", r, string(debug.Stack()))

		// Go sets panic exit codes to 2
		(*exitCode) = 2
	}
}

// setupExitHandler sets up an exit handler that will call os.Exit() with
// the set exit code, ensuring that buffered log entries are discarded.
func setupExitHandler() (exitCode *int, exit func()) {
	exitCodeInt := 0
	exitCode = &exitCodeInt
	// exit runs all shutdown hooks and then calls os.Exit with the exit code
	exit = func() {
		log.Purge(context.Background())
		os.Exit(*exitCode)
	}
	return
}
