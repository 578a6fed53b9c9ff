package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/di"
	"github.com/mikey/leads-agent/internal/factory"
	"github.com/mikey/leads-agent/internal/server"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	srv *server.Server,
	registry *factory.LLMRegistry,
) error {
	defer logger.Sync()

	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start webhook server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("Failed to stop server cleanly", zap.Error(err))
	}

	if err := registry.Close(); err != nil {
		logger.Error("Failed to close LLM clients", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
