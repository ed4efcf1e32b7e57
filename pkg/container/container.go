package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"library-catalog/internal/config"
	cataloghandler "library-catalog/internal/domains/catalog/handler"
	catalogrepo "library-catalog/internal/domains/catalog/repository"
	catalogservice "library-catalog/internal/domains/catalog/service"
	userhandler "library-catalog/internal/domains/user/handler"
	userrepo "library-catalog/internal/domains/user/repository"
	userservice "library-catalog/internal/domains/user/service"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/events"
	"library-catalog/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph of the application.
// Pattern: Service Locator + Dependency Injection.
// Everything in here is a singleton for the app lifetime.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	Mongo      *database.MongoDB // nil when the store backend is "memory"
	Redis      *redis.Client     // nil unless the events backend is "redis"
	Hub        *events.Hub
	Notifier   events.Notifier
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	AuthorRepo catalogrepo.AuthorRepository
	BookRepo   catalogrepo.BookRepository
	UserRepo   userrepo.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	CatalogService catalogservice.Service
	UserService    userservice.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	CatalogHandler *cataloghandler.CatalogHandler
	EventsHandler  *cataloghandler.EventsHandler
	UserHandler    *userhandler.UserHandler

	cancelEvents context.CancelFunc
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the dependency graph in order:
// config → infrastructure → repositories → services → handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: DOCUMENT STORE + REPOSITORIES
	// ========================================
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Mongo.Backend {
	case "memory":
		log.Println("🗄️  Using in-memory document store")
		c.AuthorRepo = catalogrepo.NewMemoryAuthorRepository()
		c.BookRepo = catalogrepo.NewMemoryBookRepository()
		c.UserRepo = userrepo.NewMemoryRepository()
	default:
		log.Println("🗄️  Connecting to MongoDB...")
		mongoDB, err := database.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		c.Mongo = mongoDB

		c.AuthorRepo, err = catalogrepo.NewMongoAuthorRepository(ctx, mongoDB.Database)
		if err != nil {
			return nil, err
		}
		c.BookRepo, err = catalogrepo.NewMongoBookRepository(ctx, mongoDB.Database)
		if err != nil {
			return nil, err
		}
		c.UserRepo, err = userrepo.NewMongoRepository(ctx, mongoDB.Database)
		if err != nil {
			return nil, err
		}
	}

	// ========================================
	// STEP 3: EVENT FAN-OUT
	// ========================================
	c.Hub = events.NewHub()

	if cfg.Events.Backend == "redis" {
		log.Println("📡 Bridging events through Redis pub/sub...")
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Events.RedisAddr,
			Password: cfg.Events.RedisPass,
			DB:       cfg.Events.RedisDB,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping Redis: %w", err)
		}

		notifier := events.NewRedisNotifier(c.Redis, cfg.Events.RedisChannel, c.Hub)
		c.Notifier = notifier

		eventsCtx, cancelEvents := context.WithCancel(context.Background())
		c.cancelEvents = cancelEvents
		go func() {
			if err := notifier.Run(eventsCtx); err != nil && eventsCtx.Err() == nil {
				log.Printf("⚠️  Redis event bridge stopped: %v", err)
			}
		}()
	} else {
		c.Notifier = c.Hub
	}

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	c.CatalogService = catalogservice.NewCatalogService(c.AuthorRepo, c.BookRepo, c.Notifier)
	c.UserService = userservice.NewUserService(c.UserRepo, c.JWTManager)

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.CatalogHandler = cataloghandler.NewCatalogHandler(c.CatalogService)
	c.EventsHandler = cataloghandler.NewEventsHandler(c.Hub)
	c.UserHandler = userhandler.NewUserHandler(c.UserService)

	log.Println("✅ Container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown
func (c *Container) Cleanup() {
	if c.cancelEvents != nil {
		c.cancelEvents()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis client: %v", err)
		}
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Mongo.Close(ctx); err != nil {
			log.Printf("⚠️  Failed to disconnect MongoDB: %v", err)
		}
	}
}
