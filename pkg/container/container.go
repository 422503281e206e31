package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/config"
	authorRepo "bookcatalog-backend/internal/domains/author/repository"
	authorService "bookcatalog-backend/internal/domains/author/service"
	bookHandler "bookcatalog-backend/internal/domains/book/handler"
	bookRepo "bookcatalog-backend/internal/domains/book/repository"
	bookService "bookcatalog-backend/internal/domains/book/service"
	reviewRepo "bookcatalog-backend/internal/domains/review/repository"
	reviewService "bookcatalog-backend/internal/domains/review/service"
	uploadHandler "bookcatalog-backend/internal/domains/upload/handler"
	uploadService "bookcatalog-backend/internal/domains/upload/service"
	"bookcatalog-backend/internal/graph"
	"bookcatalog-backend/internal/graph/loader"
	infraCache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/errtrack"
	"bookcatalog-backend/internal/infrastructure/metrics"
	"bookcatalog-backend/internal/infrastructure/queue"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// API và worker dùng chung; worker chỉ bỏ qua phần GraphQL/handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	DB       *database.PostgresDB // authors, books
	Mongo    *database.MongoDB    // reviews
	Redis    *infraCache.RedisClient
	Cache    cache.Cache
	Storage  *storage.MinIOStorage
	Queue    *queue.Client
	Metrics  *metrics.Metrics
	Reporter errtrack.Reporter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	ReviewRepo reviewRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface
	UploadService *uploadService.UploadService

	// ========================================
	// HANDLER LAYER
	// ========================================
	LoaderSources loader.Sources
	GraphHandler  *graph.Handler
	ExportHandler *bookHandler.ExportHandler
	UploadHandler *uploadHandler.UploadHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer dựng toàn bộ dependency graph theo thứ tự:
// config → error tracker → postgres → mongo → redis → minio → queue → repos → services → handlers.
// Lỗi ở bất kỳ bước nào: đóng những gì đã mở rồi trả lỗi.
func NewContainer(ctx context.Context) (_ *Container, err error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Metrics: metrics.New()}
	defer func() {
		if err != nil {
			c.Cleanup()
		}
	}()

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	c.Reporter, err = errtrack.New(errtrack.Config{
		Enabled:     cfg.Sentry.Enabled,
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.App.Environment,
		Release:     cfg.App.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init error tracking: %w", err)
	}

	// ========================================
	// STEP 2: POSTGRES
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err = db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err = db.EnsureSchema(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 3: MONGO
	// ========================================
	c.Mongo, err = database.ConnectMongo(connectCtx, database.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err = reviewRepo.EnsureIndexes(connectCtx, c.Mongo.DB); err != nil {
		return nil, fmt.Errorf("failed to ensure review indexes: %w", err)
	}

	// ========================================
	// STEP 4: REDIS
	// ========================================
	// cache miss vẫn đọc được từ Postgres nên Redis lỗi chỉ cảnh báo
	c.Redis = infraCache.NewRedisClient(cfg.Redis)
	if rerr := c.Redis.Connect(connectCtx); rerr != nil {
		log.Warn().Err(rerr).Msg("⚠️  Redis connection failed (non-critical)")
	}
	c.Cache = cache.NewRedisCache(c.Redis.Client, "bookcatalog:")

	// ========================================
	// STEP 5: OBJECT STORAGE + QUEUE
	// ========================================
	c.Storage, err = storage.NewMinIOStorage(connectCtx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB).WithCounter(c.Metrics)

	// ========================================
	// STEP 6: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	if err = c.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}
	c.registerPoolGauges()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
	c.ReviewRepo = reviewRepo.NewMongoRepository(c.Mongo.DB)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Cache)
	c.BookService = bookService.NewBookService(c.BookRepo, c.ReviewRepo, c.Queue, c.Storage, c.Reporter)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo)
	c.UploadService = uploadService.NewUploadService(c.Storage, c.Config.MinIO.UploadURLExpiry)
}

func (c *Container) initHandlers() error {
	schema, err := graph.NewSchema(graph.NewResolver(c.AuthorService, c.BookService, c.ReviewService))
	if err != nil {
		return fmt.Errorf("build graphql schema: %w", err)
	}

	c.LoaderSources = loader.Sources{
		Authors: c.AuthorRepo,
		Books:   c.BookRepo,
		Reviews: c.ReviewRepo,
	}
	c.GraphHandler = graph.NewHandler(schema, graph.NewErrorFormatter(c.Reporter, c.Metrics))
	c.ExportHandler = bookHandler.NewExportHandler(c.BookService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)
	return nil
}

type gauge struct {
	subsystem, name, help string
	fn                    func() float64
}

// registerPoolGauges xuất pgxpool và go-redis pool stats qua /metrics
func (c *Container) registerPoolGauges() {
	pg := func(pick func(*database.PoolStats) int32) func() float64 {
		return func() float64 {
			stats, err := c.DB.Stats()
			if err != nil {
				return 0
			}
			return float64(pick(stats))
		}
	}

	gauges := []gauge{
		{"db_pool", "acquired_conns", "Connections currently in use", pg(func(s *database.PoolStats) int32 { return s.AcquiredConns })},
		{"db_pool", "idle_conns", "Idle connections in the pool", pg(func(s *database.PoolStats) int32 { return s.IdleConns })},
		{"db_pool", "total_conns", "Open connections in the pool", pg(func(s *database.PoolStats) int32 { return s.TotalConns })},
		{"redis_pool", "total_conns", "Open Redis connections", func() float64 { return float64(c.Redis.PoolStats().TotalConns) }},
		{"redis_pool", "timeouts", "Times a Redis connection could not be acquired in time", func() float64 { return float64(c.Redis.PoolStats().Timeouts) }},
	}

	for _, g := range gauges {
		if err := c.Metrics.RegisterGaugeFunc(g.subsystem, g.name, g.help, g.fn); err != nil {
			log.Warn().Err(err).Str("gauge", g.subsystem+"_"+g.name).Msg("Failed to register pool gauge")
		}
	}
}

// Cleanup đóng tài nguyên theo thứ tự ngược lúc mở; an toàn khi container chỉ dựng được một phần
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to disconnect Mongo")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		}
	}

	if c.Reporter != nil {
		c.Reporter.Flush(2 * time.Second)
	}

	log.Info().Msg("✅ Container cleanup completed")
}
