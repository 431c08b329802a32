package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ogulcan/clotrack/internal/app/controllers"
	appMigrations "github.com/ogulcan/clotrack/internal/app/migrations"
	"github.com/ogulcan/clotrack/internal/app/reporting"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/app/routes"
	"github.com/ogulcan/clotrack/internal/app/services"
	"github.com/ogulcan/clotrack/internal/config"
	"github.com/ogulcan/clotrack/internal/db"
	"github.com/ogulcan/clotrack/internal/middleware"
	"github.com/ogulcan/clotrack/internal/pkg/auth"
	"github.com/ogulcan/clotrack/internal/pkg/helpers"
	"github.com/ogulcan/clotrack/internal/pkg/logger"
	"github.com/ogulcan/clotrack/internal/pkg/metrics"
	"github.com/ogulcan/clotrack/internal/seed"
)

// Dependencies holds everything the HTTP layer needs, wired once at startup.
type Dependencies struct {
	Config   *config.Config
	DB       *db.PostgresDB
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Repos    *repositories.Repositories
	Services *services.Services

	ReportService *reporting.Service

	AuthController        *controllers.AuthController
	InstitutionController *controllers.InstitutionController
	ProgramController     *controllers.ProgramController
	CourseController      *controllers.CourseController
	TermController        *controllers.TermController
	SectionController     *controllers.SectionController
	OutcomeController     *controllers.OutcomeController
	ReportController      *controllers.ReportController

	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads the configuration file and configures the
// global logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "console",
		Output: os.Stdout,
	})

	lgr := logger.With("bootstrap")
	lgr.Info().Str("mode", cfg.Server.Mode).Msg("Configuration loaded")

	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds
// default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	lgr.Info().
		Str("host", cfg.Database.Host).
		Str("dbname", cfg.Database.DBName).
		Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(ctx, database.Pool, lgr); err != nil {
		// Seeding failures are logged but not fatal; the schema is in place.
		lgr.Error().Err(err).Msg("Error creating default data")
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	repos := repositories.NewRepositories(database.Pool)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	m := metrics.New()

	svcs := &services.Services{
		AuthService:        services.NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger.With("auth")),
		InstitutionService: services.NewInstitutionService(repos.InstitutionRepository),
		ProgramService:     services.NewProgramService(repos.ProgramRepository, repos.InstitutionRepository, repos.UserRepository),
		CourseService:      services.NewCourseService(repos.CourseRepository, repos.ProgramRepository, repos.InstitutionRepository),
		TermService:        services.NewTermService(repos.TermRepository, repos.CourseRepository, repos.InstitutionRepository),
		SectionService:     services.NewSectionService(repos.SectionRepository, repos.TermRepository, repos.UserRepository),
		OutcomeService:     services.NewOutcomeService(repos.OutcomeRepository, repos.CourseRepository, logger.With("outcomes")),
	}

	reportService := reporting.NewService(
		repos.ReportReader,
		repos.ReportReader,
		reporting.WithLogger(logger.With("reporting")),
		reporting.WithMetrics(m),
		reporting.WithActivityLimit(cfg.Reporting.ActivityLimit),
	)

	deps := &Dependencies{
		Config:        cfg,
		DB:            database,
		Logger:        lgr,
		Metrics:       m,
		Repos:         repos,
		Services:      svcs,
		ReportService: reportService,

		AuthController:        controllers.NewAuthController(svcs.AuthService),
		InstitutionController: controllers.NewInstitutionController(svcs.InstitutionService),
		ProgramController:     controllers.NewProgramController(svcs.ProgramService),
		CourseController:      controllers.NewCourseController(svcs.CourseService, svcs.OutcomeService),
		TermController:        controllers.NewTermController(svcs.TermService),
		SectionController:     controllers.NewSectionController(svcs.SectionService),
		OutcomeController:     controllers.NewOutcomeController(svcs.OutcomeService),

		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
	}

	deps.ReportController = controllers.NewReportController(reportService, svcs.AuthService)

	return deps
}

// SetupRouter builds the gin engine with middleware and all routes attached.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger.With("http")))
	router.Use(middleware.Instrument(deps.Metrics))

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"message": "pong"})
	})

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.InstitutionController,
		deps.ProgramController,
		deps.CourseController,
		deps.TermController,
		deps.SectionController,
		deps.OutcomeController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	routes.SetupSwagger(router)

	return router
}
