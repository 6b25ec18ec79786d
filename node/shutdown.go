package node

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownTimeout bounds the time each handler gets to stop.
var ShutdownTimeout = 30 * time.Second

type ShutdownHandler struct {
	Component string
	StopFunc  StopFunc
}

// MonitorShutdown waits for SIGTERM, SIGINT or the trigger channel, then
// stops the handlers in order. A failing handler is logged and does not
// prevent the next ones from running. The returned channel is closed once
// every handler has returned.
func MonitorShutdown(triggerCh <-chan struct{}, handlers ...ShutdownHandler) <-chan struct{} {
	sigCh := make(chan os.Signal, 2)
	out := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			log.Warnw("received shutdown", "signal", sig)
		case <-triggerCh:
			log.Warn("received shutdown")
		}

		log.Warn("Shutting down...")

		for _, h := range handlers {
			ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			err := h.StopFunc(ctx)
			cancel()
			if err != nil {
				log.Errorw("shutdown failed", "component", h.Component, "error", err)
				continue
			}
			log.Infow("shut down", "component", h.Component)
		}

		log.Warn("Graceful shutdown successful")

		// Sync all loggers.
		_ = log.Sync() //nolint:errcheck
		close(out)
	}()

	signal.Reset(syscall.SIGTERM, syscall.SIGINT)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	return out
}
