// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/container"
	"github.com/brightloom/storefront-go/internal/infrastructure/database"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
	"github.com/brightloom/storefront-go/internal/presentation/http/server"
	"github.com/brightloom/storefront-go/pkg/config"
)

// Initialize performs the complete startup sequence: record store, schema,
// cache, dependency container, HTTP server, then graceful shutdown.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	// Step 1: Open the record store
	log.Println("Opening record store...")
	db, err := database.New()
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}

	// Step 2: Ensure the commerce schema exists
	log.Println("Ensuring commerce schema...")
	creator := database.NewTableCreator()
	if err := creator.CreateSchema(db.Conn); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Step 3: Resolve the JWT secret
	jwtSecret := config.JWTSecret
	if jwtSecret == "" {
		log.Println("No JWT_SECRET configured - generating an ephemeral one")
		jwtSecret, err = security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
	}

	// Step 4: Create dependency injection container
	log.Println("Initializing dependency injection container...")
	appContainer, err := container.NewContainer(db, jwtSecret)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	logger := appContainer.Logger
	logger.Startup().Info("Container initialization complete - switching to channeled logging")

	// Step 5: Start HTTP server
	httpServer := server.New(config.Port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", config.Port)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing record store", "error", err.Error())
	} else {
		logger.Shutdown().Info("Record store closed successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
