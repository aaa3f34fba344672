// Package container provides dependency injection using Uber FX.
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	recipeapp "github.com/tastebite/platform/internal/application/recipe"
	listapp "github.com/tastebite/platform/internal/application/shoppinglist"
	userapp "github.com/tastebite/platform/internal/application/user"
	"github.com/tastebite/platform/internal/infrastructure/ai/openai"
	"github.com/tastebite/platform/internal/infrastructure/catalog/mealdb"
	"github.com/tastebite/platform/internal/infrastructure/config"
	"github.com/tastebite/platform/internal/infrastructure/http/apiserver"
	gormrepo "github.com/tastebite/platform/internal/infrastructure/persistence/gorm"
	"github.com/tastebite/platform/internal/infrastructure/persistence/memory"
	redisrepo "github.com/tastebite/platform/internal/infrastructure/persistence/redis"
	"github.com/tastebite/platform/internal/infrastructure/security"
	"github.com/tastebite/platform/internal/ports/outbound"
	"github.com/tastebite/platform/pkg/logger"
)

// Module wires the full application graph.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	CatalogModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := gormrepo.Open(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("database", cfg.Database.Database),
		)
		return db, nil
	},
)

// CacheModule provides the cache repository. Redis when enabled,
// in-process otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Redis.Enabled {
			log.Info("Using Redis cache", zap.String("addr", cfg.RedisAddr()))
			return redisrepo.NewCacheRepository(redisrepo.NewClient(cfg), log)
		}
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository()
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewRecipeRepository,
	gormrepo.NewUserRepository,
	gormrepo.NewShoppingListRepository,
)

// CatalogModule provides the external catalog client and its cache warmer
var CatalogModule = fx.Provide(
	func(cfg *config.Config, cache outbound.CacheRepository, log *zap.Logger) outbound.CatalogClient {
		client := mealdb.NewClient(cfg, log)
		return mealdb.NewCachedClient(client, cache, cfg.Catalog.CacheTTL, log)
	},
	func(catalog outbound.CatalogClient, cfg *config.Config, log *zap.Logger) *mealdb.Warmer {
		return mealdb.NewWarmer(catalog, cfg.Catalog.CacheTTL, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *security.AuthService {
		return security.NewAuthService(cfg, log)
	},
	func(cfg *config.Config, log *zap.Logger) outbound.AIService {
		if !cfg.AI.Enabled {
			log.Info("AI recipe generation disabled")
			return openai.Disabled()
		}
		return openai.NewClient(cfg, log)
	},
	recipeapp.NewService,
	listapp.NewService,
	func(
		userRepo outbound.UserRepository,
		auth *security.AuthService,
		log *zap.Logger,
	) *userapp.Service {
		return userapp.NewService(userRepo, auth, log)
	},
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.New,
)

// LifecycleModule starts and stops the long-running components
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
	warmer *mealdb.Warmer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			warmer.Start(context.Background())

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			warmer.Stop()
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
