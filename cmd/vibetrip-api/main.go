package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibetrip/vibetrip-api/auth"
	"github.com/vibetrip/vibetrip-api/auth/password"
	"github.com/vibetrip/vibetrip-api/auth/token"
	"github.com/vibetrip/vibetrip-api/config"
	"github.com/vibetrip/vibetrip-api/handler"
	"github.com/vibetrip/vibetrip-api/identity/supabase"
	"github.com/vibetrip/vibetrip-api/logger"
	"github.com/vibetrip/vibetrip-api/observability"
	"github.com/vibetrip/vibetrip-api/server"
	"github.com/vibetrip/vibetrip-api/server/endpoint"
	"github.com/vibetrip/vibetrip-api/server/middleware"
	"github.com/vibetrip/vibetrip-api/version"
)

const serviceName = "vibetrip-api"

func main() {
	settings, err := config.Load(serviceName)
	if err != nil {
		logger.NewDefault(serviceName).Fatal("Failed to load configuration",
			logger.Fields("error", err.Error()))
	}

	log := logger.New(&settings.Logging, settings.Name)
	logger.SetGlobalLogger(log)

	log.Info("Starting service", logger.Fields(
		"version", version.GetShortVersion(),
		"environment", settings.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Init(ctx, settings.Telemetry, observability.ServiceInfo{
		Name:        settings.Name,
		Version:     version.GetVersionInfo().Version,
		Environment: settings.Environment,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", logger.Fields("error", err.Error()))
	}

	provider, err := supabase.NewClient(settings.Supabase)
	if err != nil {
		log.Fatal("Failed to create identity provider client", logger.Fields("error", err.Error()))
	}

	signer, err := token.NewSigner(settings.Auth.TokenConfig())
	if err != nil {
		log.Fatal("Failed to create token signer", logger.Fields("error", err.Error()))
	}

	hasher := password.NewHasher()
	authService := auth.NewService(hasher, signer, provider, log)

	srv := server.New(settings.Server, log)
	srv.ApplyMiddleware()

	engine := srv.Engine()
	engine.GET("/health", endpoint.Health(settings.Name))
	engine.GET("/info", endpoint.Info(settings.Name))

	api := engine.Group("/api/v1")
	authHandler := handler.NewAuthHandler(authService, provider, signer.DefaultTTL(), log)
	authHandler.RegisterRoutes(api, middleware.Auth(authService))

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", logger.Fields("error", err.Error()))
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", logger.Fields("error", err.Error()))
	}
	telemetry.Shutdown(shutdownCtx)

	log.Info("Service stopped")
	os.Exit(0)
}
