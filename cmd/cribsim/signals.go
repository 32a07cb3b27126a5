package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// setupSignalContext creates a context that is cancelled on interrupt
// signals. The cancel function is returned too so the dashboard's abort
// keys can share it.
func setupSignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Warn("received signal, stopping after in-flight games", "signal", sig.String())
		cancel()
	}()

	return ctx, cancel
}
