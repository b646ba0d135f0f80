package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/queue"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/cache"

	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	instanceHandler "library-catalog/internal/domains/bookinstance/handler"
	instanceRepo "library-catalog/internal/domains/bookinstance/repository"
	instanceService "library-catalog/internal/domains/bookinstance/service"
	catalogHandler "library-catalog/internal/domains/catalog/handler"
	catalogJob "library-catalog/internal/domains/catalog/job"
	catalogService "library-catalog/internal/domains/catalog/service"
	genreHandler "library-catalog/internal/domains/genre/handler"
	genreRepo "library-catalog/internal/domains/genre/repository"
	genreService "library-catalog/internal/domains/genre/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and cmd/worker.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil with STORE_DRIVER=memory
	Cache       cache.Cache
	AsynqClient *asynq.Client // nil with STORE_DRIVER=memory
	Notifier    shared.ChangeNotifier
	RateLimiter *middleware.FormRateLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo   authorRepo.RepositoryInterface
	GenreRepo    genreRepo.RepositoryInterface
	BookRepo     bookRepo.RepositoryInterface
	InstanceRepo instanceRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService   authorService.ServiceInterface
	GenreService    genreService.ServiceInterface
	BookService     bookService.ServiceInterface
	InstanceService instanceService.ServiceInterface
	CatalogService  catalogService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler   *authorHandler.AuthorHandler
	GenreHandler    *genreHandler.GenreHandler
	BookHandler     *bookHandler.BookHandler
	InstanceHandler *instanceHandler.BookInstanceHandler
	CatalogHandler  *catalogHandler.CatalogHandler

	// ========================================
	// JOB HANDLERS
	// ========================================
	RefreshSummaryJob *catalogJob.RefreshSummaryHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the graph in dependency order:
// infrastructure, repositories, services, handlers.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Str("store", cfg.Store.Driver).Msg("[CONTAINER] Initializing")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Ready")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	if cfg.RateLimit.Enabled {
		c.RateLimiter = middleware.NewFormRateLimiter(cfg.RateLimit.PerSec, cfg.RateLimit.Burst)
	}

	if cfg.IsMemoryStore() {
		c.Cache = cache.NewNoop()
		return nil
	}

	// ----------------------------------------
	// DATABASE
	// ----------------------------------------
	dbConfig, err := cfg.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if cfg.Store.EnsureSchema {
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	// ----------------------------------------
	// CACHE
	// ----------------------------------------
	// Redis is optional for serving pages: a failed connect only logs, and
	// every cache miss falls through to PostgreSQL.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[REDIS] Connection failed (non-critical)")
	}
	c.Cache = redisCache

	// ----------------------------------------
	// QUEUE CLIENT
	// ----------------------------------------
	c.AsynqClient = asynq.NewClient(queue.RedisOpt(cfg.Redis))
	return nil
}

func (c *Container) initRepositories() {
	if c.Config.IsMemoryStore() {
		c.AuthorRepo = authorRepo.NewMemoryRepository()
		c.GenreRepo = genreRepo.NewMemoryRepository()
		c.BookRepo = bookRepo.NewMemoryRepository()
		c.InstanceRepo = instanceRepo.NewMemoryRepository()
		return
	}

	pool := c.DB.Pool
	ttl := c.Config.Store.EntityTTL
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.InstanceRepo = instanceRepo.NewPostgresRepository(pool, c.Cache, ttl)
}

func (c *Container) initServices() {
	notifiers := shared.Notifiers{catalogService.NewSummaryInvalidator(c.Cache)}
	if c.AsynqClient != nil {
		notifiers = append(notifiers, queue.NewSummaryNotifier(c.AsynqClient, c.Config.Jobs.QueueName))
	}
	c.Notifier = notifiers

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo, c.Notifier)
	c.GenreService = genreService.NewGenreService(c.GenreRepo, c.BookRepo, c.Notifier)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.GenreRepo, c.InstanceRepo, c.Notifier)
	c.InstanceService = instanceService.NewBookInstanceService(c.InstanceRepo, c.BookRepo, c.Notifier)
	c.CatalogService = catalogService.NewCatalogService(
		c.AuthorRepo,
		c.BookRepo,
		c.GenreRepo,
		c.InstanceRepo,
		c.BookService,
		c.Cache,
		c.Config.Catalog.SummaryTTL,
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.InstanceHandler = instanceHandler.NewBookInstanceHandler(c.InstanceService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)

	c.RefreshSummaryJob = catalogJob.NewRefreshSummaryHandler(c.CatalogService)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// Health reports each backing service as "ok", "disabled" or the error text.
func (c *Container) Health(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"database": "disabled", "redis": "disabled"}
	healthy := true

	if c.DB != nil {
		status["database"] = "ok"
		if err := c.DB.HealthCheck(ctx); err != nil {
			status["database"] = err.Error()
			healthy = false
		}
	}
	if _, ok := c.Cache.(*infraCache.RedisCache); ok {
		status["redis"] = "ok"
		if err := c.Cache.Ping(ctx); err != nil {
			// Pages still render from PostgreSQL without Redis.
			status["redis"] = err.Error()
		}
	}
	return status, healthy
}

// Cleanup releases every connection. Safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("[QUEUE] Failed to close client")
		}
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[REDIS] Failed to close")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
