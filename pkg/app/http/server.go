package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/config"
)

const defaultShutdownTimeout = 30 * time.Second

// ShutdownFunc releases a component once the server stopped taking requests.
type ShutdownFunc func(ctx context.Context) error

// ServeAndWait listens on cfg's address and serves handler until ctx ends or
// the server fails. It then drains open requests and runs onShutdown in
// order. Draining and the hooks share cfg.ShutdownTimeout.
//
// A listen failure is returned at once; the hooks still run.
func ServeAndWait(
	ctx context.Context,
	handler http.Handler,
	logger *zap.Logger,
	cfg *config.ServerConfig,
	onShutdown ...ShutdownFunc,
) error {
	if handler == nil || cfg == nil {
		return errors.New("serve: handler and server config are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return errors.Join(fmt.Errorf("listen: %w", err), shutdown(cfg, logger, nil, onShutdown))
	}
	logger.Info("HTTP server listening", zap.Stringer("address", ln.Addr()))

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case serveErr = <-served:
		logger.Error("HTTP server stopped unexpectedly", zap.Error(serveErr))
		serveErr = fmt.Errorf("serve: %w", serveErr)
	}

	return errors.Join(serveErr, shutdown(cfg, logger, srv, onShutdown))
}

func shutdown(cfg *config.ServerConfig, logger *zap.Logger, srv *http.Server, hooks []ShutdownFunc) error {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Shutting down", zap.Duration("timeout", timeout), zap.Int("hooks", len(hooks)))

	var errs []error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			logger.Error("Shutdown hook failed", zap.Int("hook", i), zap.Error(err))
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		logger.Info("Shutdown complete")
	}
	return errors.Join(errs...)
}
