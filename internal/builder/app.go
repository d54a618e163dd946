package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// App is the export service: the HTTP server and the services behind it.
type App struct {
	server          *http.Server
	services        *Services
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// Run serves HTTP until SIGINT/SIGTERM or a listener error, then drains
// in-flight exports within the shutdown timeout.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.services.Close()
		return err
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully", zap.Duration("timeout", a.shutdownTimeout))

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.logger.Info("Closing archive connections")
	a.services.Close()

	a.logger.Info("Application stopped")
	_ = a.logger.Sync()
	return err
}
