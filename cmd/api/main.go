package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxor-creek/Personalized-App/config"
	"github.com/luxor-creek/Personalized-App/internal/app"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// NewAppFunc builds the application serve drives
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

// shutdownGrace is how long in-flight requests get once a signal arrives
const shutdownGrace = 30 * time.Second

// notifyForce returns a context cancelled by a second signal during the drain
var notifyForce = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// serve runs the page service until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, cfg *config.Config, log logger.Logger, newApp NewAppFunc) error {
	a := newApp(cfg, app.WithLogger(log))
	if err := a.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() { serverErr <- a.Start() }()
	log.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Page service started")

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.WithField("active_requests", a.GetActiveRequestCount()).Info("Shutdown requested, draining requests")
	a.SetShutdownTimeout(shutdownGrace)

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace+5*time.Second)
	defer cancel()
	forceCtx, stopForce := notifyForce(context.Background())
	defer stopForce()

	drained := make(chan error, 1)
	go func() { drained <- a.Shutdown(drainCtx) }()

	select {
	case err := <-drained:
		if err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("Page service stopped")
		return nil
	case <-forceCtx.Done():
		log.Warn("Second signal received, abandoning in-flight requests")
		cancel()
		select {
		case <-drained:
		case <-time.After(2 * time.Second):
		}
		return errors.New("forced shutdown")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = serve(ctx, cfg, appLogger, app.NewApp)
	stop()
	if err != nil {
		appLogger.WithField("error", err.Error()).Error("Page service exited")
		os.Exit(1)
	}
}
