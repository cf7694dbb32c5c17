package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/retrieverhq/retriever-study/internal/pkg/logger"
	"github.com/retrieverhq/retriever-study/internal/server"
)

// @title Retriever Study API
// @version 1.0
// @description API for the Retriever Study study-group matching platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@retrieverstudy.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Local development convenience; a missing .env is not an error
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
