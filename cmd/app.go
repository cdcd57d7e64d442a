// Package cmd assembles and runs the application.
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"weblarek/api"
	"weblarek/config"
	"weblarek/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// App is the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	client *mongo.Client // nil when running on the memory store
}

// Run serves HTTP until a termination signal arrives, then shuts down
// gracefully within the configured timeout.
func (a *App) Run() {
	go func() {
		logger.Info("Server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			logger.Error("Document store disconnect failed", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
}

// GetEngine exposes the gin engine, used by end-to-end tests.
func (a *App) GetEngine() http.Handler {
	return a.server.Handler
}
