package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// inflight counts requests inside the handler chain
type inflight struct {
	active atomic.Int64
	wg     sync.WaitGroup
}

// guard answers 503 once done is closed and tracks every other request
func (f *inflight) guard(done <-chan struct{}, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
			w.Header().Set("Connection", "close")
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		default:
		}

		f.active.Add(1)
		f.wg.Add(1)
		defer func() {
			f.active.Add(-1)
			f.wg.Done()
		}()
		next.ServeHTTP(w, r)
	})
}

// wait reports whether every tracked request finished within timeout
func (f *inflight) wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Start serves the handler chain until Shutdown is called
func (a *App) Start() error {
	addr := net.JoinHostPort(a.config.Server.Host, strconv.Itoa(a.config.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.serverMu.Lock()
	a.server = srv
	started := a.serverStarted
	a.serverMu.Unlock()
	a.startOnce.Do(func() { close(started) })

	a.logger.WithFields(map[string]interface{}{
		"address":    addr,
		"public_url": a.config.Campaign.PublicURL,
	}).Info("HTTP server listening")
	return srv.ListenAndServe()
}

// Shutdown stops accepting requests, drains the server within the shutdown
// timeout (or ctx's deadline when sooner) and releases every resource
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownCancel()

	a.serverMu.RLock()
	srv := a.server
	a.serverMu.RUnlock()

	var errs []error
	if srv != nil {
		budget := a.drainBudget(ctx)
		a.logger.WithFields(map[string]interface{}{
			"active_requests": a.requests.active.Load(),
			"timeout":         budget.String(),
		}).Info("Draining HTTP server")

		drainCtx, cancel := context.WithTimeout(ctx, budget)
		err := srv.Shutdown(drainCtx)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		} else if !a.requests.wait(2 * time.Second) {
			a.logger.WithField("active_requests", a.requests.active.Load()).Warn("Requests still active after server shutdown")
		}
	}

	if err := a.cleanupResources(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.WithField("error", err.Error()).Error("Shutdown completed with errors")
		return err
	}
	a.logger.Info("Shutdown completed")
	return nil
}

// drainBudget leaves a second of ctx's deadline for resource cleanup
func (a *App) drainBudget(ctx context.Context) time.Duration {
	budget := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining < budget {
			budget = max(remaining, 0)
		}
	}
	return budget
}

// cleanupResources stops the background sweepers, closes the database and
// flushes telemetry
func (a *App) cleanupResources() error {
	if a.importService != nil {
		a.importService.Close()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.stopDBStats != nil {
		a.stopDBStats()
		a.stopDBStats = nil
	}

	var errs []error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if a.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracing.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Failed to flush telemetry exporters")
		}
	}
	return errors.Join(errs...)
}

// IsServerCreated reports whether Start has built the HTTP server
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart blocks until Start has built the server or ctx ends
func (a *App) WaitForServerStart(ctx context.Context) bool {
	select {
	case <-a.serverStarted:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// GetActiveRequestCount returns the number of requests being served
func (a *App) GetActiveRequestCount() int64 {
	return a.requests.active.Load()
}

// SetShutdownTimeout bounds how long Shutdown waits for in-flight requests
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

// GetShutdownContext is cancelled when Shutdown starts
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}
