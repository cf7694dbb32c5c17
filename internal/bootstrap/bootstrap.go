package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/retrieverhq/retriever-study/internal/app/controllers"
	appMigrations "github.com/retrieverhq/retriever-study/internal/app/migrations"
	appRepos "github.com/retrieverhq/retriever-study/internal/app/repositories"
	appRoutes "github.com/retrieverhq/retriever-study/internal/app/routes"
	appServices "github.com/retrieverhq/retriever-study/internal/app/services"
	"github.com/retrieverhq/retriever-study/internal/config"
	"github.com/retrieverhq/retriever-study/internal/db"
	appMiddleware "github.com/retrieverhq/retriever-study/internal/middleware"
	"github.com/retrieverhq/retriever-study/internal/pkg/ai"
	pkgAuth "github.com/retrieverhq/retriever-study/internal/pkg/auth"
	"github.com/retrieverhq/retriever-study/internal/pkg/logger"
	"github.com/retrieverhq/retriever-study/internal/pkg/websocket"
	"github.com/retrieverhq/retriever-study/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services          *appServices.Services
	AuthController    *appControllers.AuthController
	GroupController   *appControllers.GroupController
	SearchController  *appControllers.SearchController
	UserController    *appControllers.UserController
	MessageController *appControllers.MessageController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Hub               *websocket.Hub
	WSHandler         *websocket.Handler
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.NewPostgresPool(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed demo data outside production (after migrations)
	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, AI clients, services and
// controllers, wiring them together.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// AI clients
	embedder := ai.NewEmbeddingClient(ai.EmbeddingConfig{
		BaseURL: cfg.AI.EmbeddingBaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.EmbeddingModel,
		Timeout: cfg.GetAIRequestTimeout(),
	})
	scorer := ai.NewToxicityClient(ai.ToxicityConfig{
		BaseURL: cfg.AI.ToxicityBaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.ToxicityModel,
		Timeout: cfg.GetAIRequestTimeout(),
	})

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.GetAccessTokenExpiration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	identityProvider := appServices.NewGoogleIdentityProvider(
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.RedirectURL,
	)

	// Chat hub; started in the server run loop
	deps.Hub = websocket.NewHub(lgr)

	services := &appServices.Services{}
	services.Auth = appServices.NewAuthService(deps.Repos.User, identityProvider, deps.JWTService, cfg.OAuth.AllowedDomain, lgr)
	services.Group = appServices.NewGroupService(deps.Repos.Group, embedder, lgr)
	services.Membership = appServices.NewMembershipService(deps.Repos.Group, deps.Repos.User, lgr)
	services.Recommendation = appServices.NewRecommendationService(deps.Repos.Group, deps.Repos.User, embedder, lgr)
	services.User = appServices.NewUserService(deps.Repos.User, embedder, lgr)
	services.Message = appServices.NewMessageService(deps.Repos.Message, deps.Repos.Group, scorer, deps.Hub, cfg.AI.ToxicityThreshold, lgr)
	deps.Services = services

	deps.WSHandler = websocket.NewHandler(deps.Hub, deps.Repos.Group, services.Message, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(services.Auth)
	deps.GroupController = appControllers.NewGroupController(services.Group, services.Membership)
	deps.SearchController = appControllers.NewSearchController(services.Recommendation)
	deps.UserController = appControllers.NewUserController(services.User)
	deps.MessageController = appControllers.NewMessageController(services.Message)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.GroupController,
		deps.SearchController,
		deps.UserController,
		deps.MessageController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
