// Package api implements app.Runner for the identity registration API process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/app"
	apphttp "github.com/chainsafe/vrsc-identity/pkg/app/http"
	"github.com/chainsafe/vrsc-identity/pkg/auth"
	"github.com/chainsafe/vrsc-identity/pkg/config"
	"github.com/chainsafe/vrsc-identity/pkg/pgutil"
	"github.com/chainsafe/vrsc-identity/pkg/registration/service"
	"github.com/chainsafe/vrsc-identity/pkg/registration/store"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

// Server holds cfg and the process logger to init the api server.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServer initializes new api server. A nil logger discards logs.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, logger: logger}
}

var _ app.Runner = (*Server)(nil)

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg, logger := s.cfg, s.logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting identity API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("network", cfg.Node.Network),
	)

	db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	node, err := s.openNode(ctx, logger)
	if err != nil {
		return err
	}
	defer node.Close()

	network, err := vrsc.ParseNetwork(cfg.Node.Network)
	if err != nil {
		return err
	}
	registrarOpts, err := app.RegistrarOptions(cfg.Registration, cfg.Node)
	if err != nil {
		return fmt.Errorf("registration settings: %w", err)
	}

	registrations := service.NewService(
		store.NewStore(db),
		node,
		network,
		logger,
		cfg.Registration.Timeout,
		registrarOpts...,
	)

	resumed, err := registrations.ResumePending(ctx)
	if err != nil {
		logger.Error("Failed to resume interrupted registrations", zap.Error(err))
	} else if resumed > 0 {
		logger.Info("Resumed interrupted registrations", zap.Int("count", resumed))
	}

	router := s.setupRouter(service.NewLog(registrations, logger))

	// running registrations record their final state before the DB closes
	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server, registrations.Shutdown)
}

func (s *Server) openNode(ctx context.Context, logger *zap.Logger) (*vrscrpc.Client, error) {
	nodeCfg, err := app.NodeClientConfig(s.cfg.Node)
	if err != nil {
		return nil, err
	}

	client, err := vrscrpc.New(ctx, nodeCfg, vrscrpc.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create node client: %w", err)
	}

	logger.Info("Node client ready", zap.String("rpc_url", nodeCfg.URL))
	return client, nil
}

func (s *Server) setupRouter(registrations service.Service) chi.Router {
	logger := s.logger
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.RateLimit.Enabled {
			r.Use(apphttp.RateLimit(apphttp.NewClientLimiter(s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst)))
		}

		validator := auth.NewHMACValidator(s.cfg.Auth.JWTSecret, s.cfg.Auth.Issuer)
		if validator.IsConfigured() {
			r.Use(auth.Middleware(validator))
		} else {
			logger.Warn("API authentication disabled: no JWT secret configured")
		}

		service.RegisterRoutes(r, registrations, logger)
	})

	return r
}
