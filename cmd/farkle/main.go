package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/anchal00/farkle/internal/auth"
	"github.com/anchal00/farkle/internal/config"
	"github.com/anchal00/farkle/internal/db"
	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/internal/server"
	"github.com/anchal00/farkle/internal/state"
	"github.com/anchal00/farkle/internal/telemetry"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)
	log := logger.New("main")

	shutdownTracing, err := telemetry.Setup(context.Background(), "farkle", cfg.OtelEndpoint)
	if err != nil {
		log.Error("Failed to set up tracing", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("Failed to flush traces", err)
		}
	}()

	repo, err := db.SetupDB(cfg.DB)
	if err != nil {
		log.Error("Failed to open player directory", err)
		os.Exit(1)
	}
	registry := state.NewRegistry(state.Options{
		Rules: cfg.Rules(),
		Grace: cfg.GracePeriod,
	}, state.NewInMemoryRoomStore())
	verifier := auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, nil)

	gs := server.NewGameServer(cfg, repo, verifier, registry)
	if err := gs.Run(); err != nil {
		log.Error("Server stopped", err)
	}
}
