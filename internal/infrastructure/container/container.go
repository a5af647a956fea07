// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	recipeapp "github.com/pantrybook/pantrybook/internal/application/recipe"
	userapp "github.com/pantrybook/pantrybook/internal/application/user"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	"github.com/pantrybook/pantrybook/internal/infrastructure/http/apiserver"
	"github.com/pantrybook/pantrybook/internal/infrastructure/http/handlers"
	custommw "github.com/pantrybook/pantrybook/internal/infrastructure/http/middleware"
	"github.com/pantrybook/pantrybook/internal/infrastructure/monitoring"
	gormRepo "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/migrations"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/postgres"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/sqlite"
	"github.com/pantrybook/pantrybook/internal/infrastructure/security"
	"github.com/pantrybook/pantrybook/internal/infrastructure/storage"
	"github.com/pantrybook/pantrybook/internal/ports/inbound"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	"github.com/pantrybook/pantrybook/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RedisModule,
	SecurityModule,
	StorageModule,
	RepositoryModule,
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

// DatabaseModule provides the database connection for the configured
// driver. SQLite schemas are auto-migrated; PostgreSQL uses versioned
// migrations.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			db, err := postgres.NewConnection(cfg, log)
			if err != nil {
				return nil, err
			}
			if cfg.Database.AutoMigrate {
				if err := migrations.Run(db, log); err != nil {
					return nil, err
				}
			}
			return db, nil
		case "sqlite":
			return sqlite.NewDatabase(cfg, log)
		default:
			return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
		}
	},
)

// RedisModule provides the optional Redis client used by the token
// registry. A nil client is a valid result: token revocation is then
// unavailable and validation relies on expiry alone.
var RedisModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *redis.Client {
		addr := cfg.RedisAddr()
		if addr == "" {
			log.Info("Redis not configured, token revocation disabled")
			return nil
		}

		client := redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.Database,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
		})

		log.Info("Redis client configured", zap.String("addr", addr))
		return client
	},
)

// SecurityModule provides authentication services
var SecurityModule = fx.Provide(
	security.NewAuthService,
)

// StorageModule provides file storage
var StorageModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) (*storage.LocalStorage, error) {
			return storage.NewLocalStorage(cfg.Storage.LocalPath, log)
		},
		fx.As(new(outbound.StorageService)),
	),
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewRecipeRepository,
	gormRepo.NewTagRepository,
	gormRepo.NewIngredientRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	userapp.NewUserService,
	fx.Annotate(
		recipeapp.NewService,
		fx.As(new(inbound.RecipeService)),
	),
)

// HTTPModule provides the HTTP server, handlers and middleware
var HTTPModule = fx.Provide(
	monitoring.NewMetrics,
	custommw.New,
	handlers.NewHealthHandler,
	handlers.NewUserHandler,
	func(service inbound.RecipeService, cfg *config.Config, log *zap.Logger) *handlers.RecipeHandler {
		return handlers.NewRecipeHandler(service, cfg.Storage.MaxFileSize, log)
	},
	handlers.NewCatalogHandler,
	apiserver.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting pantrybook",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down pantrybook")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
