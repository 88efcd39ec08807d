package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/config"
	"github.com/princinho/parcelly/database"
	"github.com/princinho/parcelly/logger"
	"github.com/princinho/parcelly/payment"
	"github.com/princinho/parcelly/repository"
	"github.com/princinho/parcelly/router"
	"github.com/princinho/parcelly/storage"
	"github.com/princinho/parcelly/utils"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("error", true)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	isProd := cfg.Env == "production"
	log := logger.New(cfg.LogLevel, !isProd)
	if isProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	client, err := database.Connect(connectCtx, cfg.MongoConnectionURI(), cfg.DatabaseName)
	cancel()
	if err != nil {
		return err
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Pinged your deployment. You successfully connected to MongoDB!")

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongo")
		}
	}()

	if err := repository.EnsureUserIndexes(ctx, client.Collection(database.UsersCollection)); err != nil {
		// Existing duplicate emails prevent the index; the API still serves.
		log.Warn().Err(err).Msg("user email index not created")
	}

	repos := repository.NewRepositories(client)
	if err := utils.SeedAdminUser(ctx, repos.Users, cfg.AdminEmail); err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}
	if store == nil {
		log.Warn().Msg("no object store configured, proof uploads disabled")
	}

	r := router.New(router.Deps{
		Repos:          repos,
		Payments:       payment.NewStripeGateway(cfg.PaymentSecretKey, cfg.PaymentCurrency),
		Store:          store,
		TokenSecret:    cfg.AccessTokenSecret,
		AllowedOrigins: cfg.Origins(),
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		IdleTimeout:  cfg.IdleTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msgf("parcelly is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
