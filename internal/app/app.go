package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/learningpath-api/internal/repository"
	"github.com/noah-isme/learningpath-api/internal/service"
	"github.com/noah-isme/learningpath-api/pkg/cache"
	"github.com/noah-isme/learningpath-api/pkg/config"
	"github.com/noah-isme/learningpath-api/pkg/database"
)

// App holds the wired services shared by the HTTP server and the CLI.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *sqlx.DB
	Redis     *redis.Client
	Cache     *repository.CacheRepository
	Metrics   *service.MetricsService
	Validator *validator.Validate

	Auth          *service.AuthService
	Evaluator     *service.LineEvaluator
	LearningPaths *service.LearningPathService
}

// New opens the database and optional redis connection and wires the services.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	return Wire(cfg, logger, db, redisClient), nil
}

// Wire builds the service graph on top of existing connections.
func Wire(cfg *config.Config, logger *zap.Logger, db *sqlx.DB, redisClient *redis.Client) *App {
	prefix := cfg.Database.TablePrefix
	metrics := service.NewMetricsService()
	validate := validator.New()

	paths := repository.NewLearningPathRepository(db, prefix)
	completion := repository.NewCompletionRepository(db, repository.CompletionRepositoryConfig{
		TablePrefix:    prefix,
		CreditField:    cfg.LearningPath.CreditFieldShortname,
		CatalogueField: cfg.LearningPath.CatalogueFieldShortname,
	})
	entities := repository.NewEntityRepository(db, prefix)
	cacheRepo := repository.NewCacheRepository(redisClient, logger)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.LearningPath.CacheTTL, logger, cfg.LearningPath.CacheEnabled && cacheRepo.Enabled())

	evaluator := service.NewLineEvaluator(service.LineEvaluatorParams{
		Completion: completion,
		Credits:    completion,
		Entities:   entities,
		Lines:      paths,
		Metrics:    metrics,
		Logger:     logger,
		BaseURL:    cfg.LMS.BaseURL,
		Location:   cfg.LMS.Location(),
	})
	catalog := service.NewPathCatalog(
		repository.NewCohortAssignmentRepository(db, prefix),
		repository.NewUserAssignmentRepository(db, prefix),
		metrics,
		cfg.LearningPath.ExistsRequirePublished,
	)

	learningPaths := service.NewLearningPathService(service.LearningPathServiceParams{
		Paths:      paths,
		Evaluator:  evaluator,
		Aggregator: service.NewPathAggregator(evaluator, metrics, cfg.LearningPath.LineConcurrency),
		Catalog:    catalog,
		Cache:      cacheSvc,
		Logger:     logger,
		Config: service.LearningPathServiceConfig{
			CacheTTL:       cfg.LearningPath.CacheTTL,
			Concurrency:    cfg.LearningPath.LineConcurrency,
			Location:       cfg.LMS.Location(),
			ExportsEnabled: cfg.Exports.Enabled,
		},
	})

	auth := service.NewAuthService(validate, logger, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		Redis:         redisClient,
		Cache:         cacheRepo,
		Metrics:       metrics,
		Validator:     validate,
		Auth:          auth,
		Evaluator:     evaluator,
		LearningPaths: learningPaths,
	}
}

// Close releases the database and redis connections.
func (a *App) Close() error {
	if err := a.Cache.Close(); err != nil {
		a.Logger.Warn("closing redis", zap.Error(err))
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
