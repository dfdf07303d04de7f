package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"mediashelf-backend/internal/config"
	infraCache "mediashelf-backend/internal/infrastructure/cache"
	"mediashelf-backend/internal/infrastructure/database"
	"mediashelf-backend/internal/infrastructure/llm"
	"mediashelf-backend/pkg/cache"
	"mediashelf-backend/pkg/jwt"

	catalogRepo "mediashelf-backend/internal/domains/catalog/repository"
	enrichHandler "mediashelf-backend/internal/domains/enrichment/handler"
	"mediashelf-backend/internal/domains/enrichment/provider"
	enrichService "mediashelf-backend/internal/domains/enrichment/service"
	"mediashelf-backend/internal/domains/enrichment/walker"
	shelfHandler "mediashelf-backend/internal/domains/shelf/handler"
	shelfRepo "mediashelf-backend/internal/domains/shelf/repository"
	shelfService "mediashelf-backend/internal/domains/shelf/service"
)

// Container holds the application dependency graph. Everything in here is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, then services, then handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	BookRepo    catalogRepo.BookRepository
	MovieRepo   catalogRepo.MovieRepository
	TVShowRepo  catalogRepo.TVShowRepository
	PodcastRepo catalogRepo.PodcastRepository
	ArticleRepo catalogRepo.ArticleRepository
	ShelfRepo   shelfRepo.RepositoryInterface

	EnrichmentService *enrichService.Service
	ShelfService      *shelfService.Service
	WalkRegistry      *walker.Registry

	DetailHandler *enrichHandler.DetailHandler
	WalkHandler   *enrichHandler.WalkHandler
	ShelfHandler  *shelfHandler.Handler
}

// NewContainer builds the full graph. A database failure is fatal; a Redis
// failure is not, the cooldown store just loses cross-process visibility.
func NewContainer() (*Container, error) {
	log.Println("Initializing container...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("WARNING: Redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("Container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = catalogRepo.NewBookRepository(pool)
	c.MovieRepo = catalogRepo.NewMovieRepository(pool)
	c.TVShowRepo = catalogRepo.NewTVShowRepository(pool)
	c.PodcastRepo = catalogRepo.NewPodcastRepository(pool)
	c.ArticleRepo = catalogRepo.NewArticleRepository(pool)
	c.ShelfRepo = shelfRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	// One cooldown store is shared across all providers so a rate-limited
	// upstream stays quiet process-wide, not per-provider-instance.
	cooldown := provider.NewCooldownStore(c.Cache)

	tmdbCfg := provider.TMDBConfig{
		APIKey:   cfg.TMDB.APIKey,
		BaseURL:  cfg.TMDB.BaseURL,
		ImageURL: cfg.TMDB.ImageURL,
	}
	omdbCfg := provider.OMDBConfig{
		APIKey:  cfg.OMDB.APIKey,
		BaseURL: cfg.OMDB.BaseURL,
	}

	bookProvider := provider.NewBookProvider(provider.BookProviderConfig{
		OpenLibraryURL: cfg.Books.OpenLibraryURL,
		CoversURL:      cfg.Books.CoversURL,
		GoogleBooksURL: cfg.Books.GoogleBooksURL,
	}, cooldown)
	movieProvider := provider.NewMovieProvider(tmdbCfg, omdbCfg, cooldown)
	tvshowProvider := provider.NewTVShowProvider(tmdbCfg, omdbCfg, cooldown)
	podcastProvider := provider.NewPodcastProvider(provider.PodcastProviderConfig{
		ITunesURL: cfg.ITunes.BaseURL,
	}, cooldown)
	articleProvider := provider.NewArticleProvider(cooldown)

	// Without an LLM key the deducer falls back to per-kind defaults only.
	var completer llm.Completer
	if cfg.LLM.APIKey != "" {
		completer = llm.NewClient(llm.Config{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		})
	}
	genres := enrichService.NewGenreDeducer(completer)

	c.EnrichmentService = enrichService.NewService(
		c.BookRepo, c.MovieRepo, c.TVShowRepo, c.PodcastRepo, c.ArticleRepo,
		bookProvider, movieProvider, tvshowProvider, podcastProvider, articleProvider,
		genres,
	)

	c.ShelfService = shelfService.NewService(
		c.ShelfRepo,
		c.BookRepo, c.MovieRepo, c.TVShowRepo, c.PodcastRepo, c.ArticleRepo,
	)

	c.WalkRegistry = walker.NewRegistry(c.EnrichmentService)
}

func (c *Container) initHandlers() {
	c.DetailHandler = enrichHandler.NewDetailHandler(c.EnrichmentService)
	c.WalkHandler = enrichHandler.NewWalkHandler(c.WalkRegistry, c.ShelfService)
	c.ShelfHandler = shelfHandler.NewHandler(c.ShelfService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("WARNING: failed to close database: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok && rc != nil {
		if err := rc.Close(); err != nil {
			log.Printf("WARNING: failed to close Redis: %v", err)
		}
	}

	log.Println("Container cleanup completed")
}
