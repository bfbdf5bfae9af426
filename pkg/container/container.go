package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hanameee/bloglist-backend/internal/config"
	infracache "github.com/hanameee/bloglist-backend/internal/infrastructure/cache"
	"github.com/hanameee/bloglist-backend/internal/infrastructure/database"
	"github.com/hanameee/bloglist-backend/internal/shared/auth"
	"github.com/hanameee/bloglist-backend/pkg/cache"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
	accountHandler "github.com/hanameee/bloglist-backend/internal/domains/account/handler"
	accountRepo "github.com/hanameee/bloglist-backend/internal/domains/account/repository"
	accountService "github.com/hanameee/bloglist-backend/internal/domains/account/service"
	"github.com/hanameee/bloglist-backend/internal/domains/post"
	postHandler "github.com/hanameee/bloglist-backend/internal/domains/post/handler"
	postRepo "github.com/hanameee/bloglist-backend/internal/domains/post/repository"
	postService "github.com/hanameee/bloglist-backend/internal/domains/post/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Codec  *auth.TokenCodec
	Guard  *auth.Guard

	// Repositories
	AccountRepo account.Repository
	PostRepo    post.Repository

	// Services
	AccountService account.Service
	PostService    postService.Service

	// Handlers
	AccountHandler *accountHandler.AccountHandler
	PostHandler    *postHandler.PostHandler
}

// NewContainer builds the whole graph in dependency order: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Database
	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Cache: a failed ping is logged, not fatal. The repositories treat
	// cache errors as misses.
	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable at startup, continuing without warm cache")
	}
	c.Cache = redisCache

	// Token codec and authorization guard
	c.Codec = auth.NewTokenCodec(cfg.JWT.Secret)
	c.Guard = auth.NewGuard(c.Codec)

	// Repositories
	c.AccountRepo = accountRepo.NewPostgresRepository(c.DB.Pool)
	c.PostRepo = postRepo.NewPostgresRepository(c.DB.Pool, c.Cache)

	// Services
	c.AccountService = accountService.NewAccountService(c.AccountRepo, c.Codec, cfg.JWT.AccessTTL)
	c.PostService = postService.NewPostService(c.PostRepo, c.AccountRepo, c.Guard)

	// Handlers
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis client failed")
		}
	}
}
