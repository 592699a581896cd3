// crm-mockd serves an in-memory mock of the CRM gateway for local
// development: same auth flow, same routes, same error envelope.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/config"
	"github.com/vantagecrm/crm-client-go/internal/infra/observability"
	"github.com/vantagecrm/crm-client-go/internal/mockapi"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.MockPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
		zap.Bool("tracing", cfg.TracingOn),
	)

	if cfg.TracingOn {
		shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "crm-mockd")
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	store := mockapi.NewStore()
	store.Seed()

	auth, err := mockapi.NewAuth(cfg.JWTSecret, cfg.JWTAccessTTL)
	if err != nil {
		logger.Fatal("failed to init auth", zap.Error(err))
	}

	router := mockapi.NewRouter(store, auth, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.MockPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("mock server starting", zap.Int("port", cfg.MockPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
