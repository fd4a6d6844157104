// Package healthservice boots the HealthVault HTTP service.
package healthservice

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthvault/healthvault/internal/ai"
	"github.com/healthvault/healthvault/internal/api"
	"github.com/healthvault/healthvault/internal/auth"
	"github.com/healthvault/healthvault/internal/config"
	"github.com/healthvault/healthvault/internal/factory"
	"github.com/healthvault/healthvault/internal/logger"
	"github.com/healthvault/healthvault/internal/ratelimit"
	"github.com/healthvault/healthvault/internal/services"
)

// Run starts the health service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("health-service")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("ai_provider", cfg.AIProvider).
		Str("ai_model", cfg.AIModel).
		Int("http_port", cfg.HTTPPort).
		Msg("Health service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}

	completer, err := ai.NewCompleter(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Completion provider unavailable")
		return err
	}

	limiter := ratelimit.New(cfg.AIRateLimit, cfg.AIRateWindow)
	summarySvc := services.NewSummaryService(st, completer, limiter, log)
	authorizer := auth.NewStaticAuthorizer(cfg.AuthTokens)

	router := api.NewRouter(st, summarySvc, authorizer)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}
