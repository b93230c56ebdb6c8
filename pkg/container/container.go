package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"

	articleHandler "library-catalog/internal/domains/article/handler"
	articleRepo "library-catalog/internal/domains/article/repository"
	articleService "library-catalog/internal/domains/article/service"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	identityHandler "library-catalog/internal/domains/identity/handler"
	identityRepo "library-catalog/internal/domains/identity/repository"
	identityService "library-catalog/internal/domains/identity/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application. It is the root
// of the dependency graph; everything in it is a singleton.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo   authorRepo.Repository
	BookRepo     bookRepo.Repository
	ArticleRepo  articleRepo.Repository
	IdentityRepo identityRepo.Repository

	// Services
	AuthorService   authorService.Service
	BookService     bookService.Service
	ArticleService  articleService.Service
	IdentityService identityService.Service

	// Handlers
	AuthorHandler  *authorHandler.AuthorHandler
	BookHandler    *bookHandler.BookHandler
	ArticleHandler *articleHandler.ArticleHandler
	AuthHandler    *identityHandler.AuthHandler
	ViewsHandler   *identityHandler.ViewsHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers. It also
// runs the group bootstrap so Admins/Editors/Viewers always exist.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		// Cache failure is non-critical, repositories fall through to
		// the database on every miss.
		log.Warn().Err(err).Msg("redis connection failed, continuing without warm cache")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	if err := c.IdentityService.EnsureDefaultGroups(ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap groups: %w", err)
	}

	log.Info().Str("environment", cfg.App.Environment).Msg("container initialized")
	return c, nil
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool)
	c.IdentityRepo = identityRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// Cross-domain wiring: the book service checks author existence,
	// the author service lists a deleted author's books for the nested
	// serialization.
	c.BookService = bookService.NewService(c.BookRepo, c.AuthorRepo)
	c.AuthorService = authorService.NewService(c.AuthorRepo, c.BookRepo)
	c.ArticleService = articleService.NewService(c.ArticleRepo)
	c.IdentityService = identityService.NewService(c.IdentityRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.AuthHandler = identityHandler.NewAuthHandler(c.IdentityService)
	c.ViewsHandler = identityHandler.NewViewsHandler()
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}
