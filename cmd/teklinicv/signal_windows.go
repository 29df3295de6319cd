//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels the returned context on interrupt, so a batch stops
// picking up new input files. Call stop() to release it.
// SIGTERM does not exist on Windows.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
