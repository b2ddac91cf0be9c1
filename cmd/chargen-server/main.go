// Package main provides the character generator server: the HTTP API plus an
// optional gRPC health listener.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/swn-chargen/internal/config"
	"github.com/cory-johannsen/swn-chargen/internal/observability"
	"github.com/cory-johannsen/swn-chargen/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "chargen-server")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	api, err := initializeAPI(cfg, logger.Named("api"))
	if err != nil {
		logger.Fatal("building api", zap.Error(err))
	}
	handler, err := api.Handler()
	if err != nil {
		logger.Fatal("building http handler", zap.Error(err))
	}

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("http", server.NewHTTPService(httpSrv, cfg.Server.ShutdownTimeout, logger.Named("http")))
	if cfg.Health.Enabled() {
		lifecycle.Add("grpc-health", server.NewHealthService(cfg.Health.Addr(), logger.Named("health")))
	}

	logger.Info("chargen server initialized",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("grpc_health", cfg.Health.Enabled()),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
