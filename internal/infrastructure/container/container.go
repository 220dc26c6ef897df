// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	appai "github.com/lezzetli/v1/internal/application/ai"
	apprating "github.com/lezzetli/v1/internal/application/rating"
	apprecipe "github.com/lezzetli/v1/internal/application/recipe"
	appuser "github.com/lezzetli/v1/internal/application/user"
	"github.com/lezzetli/v1/internal/infrastructure/ai/gemini"
	"github.com/lezzetli/v1/internal/infrastructure/config"
	"github.com/lezzetli/v1/internal/infrastructure/http/handlers"
	"github.com/lezzetli/v1/internal/infrastructure/http/server"
	"github.com/lezzetli/v1/internal/infrastructure/identity"
	gormrepo "github.com/lezzetli/v1/internal/infrastructure/persistence/gorm"
	"github.com/lezzetli/v1/internal/infrastructure/persistence/memory"
	redisrepo "github.com/lezzetli/v1/internal/infrastructure/persistence/redis"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	IdentityModule,
	RepositoryModule,
	AIModule,
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

// DatabaseModule provides the GORM connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		return gormrepo.NewConnection(cfg, log)
	},
)

// CacheModule provides the cache repository. Redis when reachable,
// in-memory otherwise so local development works without services.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		client, err := redisrepo.NewClient(cfg, log)
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
			return memory.NewCacheRepository()
		}
		return redisrepo.NewCacheRepository(client, log)
	},
)

// IdentityModule provides the identity provider
var IdentityModule = fx.Provide(
	func(db *gorm.DB, cache outbound.CacheRepository, cfg *config.Config, log *zap.Logger) outbound.IdentityProvider {
		return identity.NewProvider(db, cache, cfg.Identity, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewRecipeRepository,
	gormrepo.NewUserRepository,
	gormrepo.NewRatingRepository,
)

// AIModule provides the model client
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.ModelClient {
		return gemini.NewClient(cfg.AI, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	apprecipe.NewCatalogService,
	appuser.NewAccountService,
	apprating.NewService,
	appai.NewSuggestionService,
	appai.NewChatService,
)

// HTTPModule provides HTTP handlers and the server
var HTTPModule = fx.Provide(
	handlers.NewAuthHandlers,
	handlers.NewRecipeHandlers,
	handlers.NewRatingHandlers,
	handlers.NewAIHandlers,
	server.NewServer,
)

// LifecycleModule ties the server to the fx lifecycle and reports
// missing secrets at startup without refusing to boot.
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, cfg *config.Config, log *zap.Logger) {
		for _, key := range cfg.MissingRequired() {
			log.Error("required configuration is missing", zap.String("key", key))
		}

		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				srv.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Stop(ctx)
			},
		})
	},
)
