package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// WithSignals returns a context cancelled on SIGINT/SIGTERM or when the
// returned cancel func is called. log may be nil.
func WithSignals(parent context.Context, log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			if log != nil {
				log.Info("signal received", slog.String("signal", sig.String()))
			}
			cancel()
		}
	}()

	return ctx, cancel
}
