package main

import (
	"flag"

	"github.com/ogulcan/clotrack/internal/pkg/logger"
	"github.com/ogulcan/clotrack/internal/server"
)

// @title CLOTrack API
// @version 1.0
// @description Role-scoped record keeping and reporting for academic programs, courses and learning outcomes

// @contact.name API Support
// @contact.email support@clotrack.app

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
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server execution failed or shutdown encountered errors")
	}

	logger.Info().Msg("Application finished gracefully")
}
