// Package app provides the dependency injection container assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	authService "github.com/rmarques/marketgate/internal/auth/service"
	authUseCase "github.com/rmarques/marketgate/internal/auth/usecase"
	"github.com/rmarques/marketgate/internal/config"
	"github.com/rmarques/marketgate/internal/database"
	eventsService "github.com/rmarques/marketgate/internal/events/service"
	eventsUseCase "github.com/rmarques/marketgate/internal/events/usecase"
	"github.com/rmarques/marketgate/internal/http"
	inquiriesUseCase "github.com/rmarques/marketgate/internal/inquiries/usecase"
	listingsUseCase "github.com/rmarques/marketgate/internal/listings/usecase"
	"github.com/rmarques/marketgate/internal/metrics"
	outboundService "github.com/rmarques/marketgate/internal/outbound/service"
	outboundUseCase "github.com/rmarques/marketgate/internal/outbound/usecase"
	"github.com/rmarques/marketgate/internal/ratelimit"
	statsUseCase "github.com/rmarques/marketgate/internal/stats/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. Components are created lazily on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	redisClient     redis.UniversalClient
	counterStore    ratelimit.CounterStore
	limiter         *ratelimit.Limiter
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Auth
	keyService           authService.KeyService
	accountRepository    authUseCase.AccountRepository
	credentialRepository authUseCase.CredentialRepository
	accountUseCase       authUseCase.AccountUseCase
	credentialUseCase    authUseCase.CredentialUseCase

	// Listings
	listingRepository listingsUseCase.ListingRepository
	listingUseCase    listingsUseCase.ListingUseCase

	// Inquiries
	inquiryRepository inquiriesUseCase.InquiryRepository
	inquiryUseCase    inquiriesUseCase.InquiryUseCase

	// Stats
	statsRepository statsUseCase.StatsRepository
	statsUseCase    statsUseCase.StatsUseCase

	// Outbound
	messageRepository outboundUseCase.MessageRepository
	mailer            outboundUseCase.Mailer
	secretService     outboundService.SecretService
	dispatchUseCase   outboundUseCase.DispatchUseCase

	// Events
	eventRepository eventsUseCase.EventRepository
	botDetector     *eventsService.BotDetector
	visitorHasher   *eventsService.VisitorHasher
	trackUseCase    eventsUseCase.TrackUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	txManagerInit            sync.Once
	counterStoreInit         sync.Once
	limiterInit              sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	keyServiceInit           sync.Once
	accountRepositoryInit    sync.Once
	credentialRepositoryInit sync.Once
	accountUseCaseInit       sync.Once
	credentialUseCaseInit    sync.Once
	listingRepositoryInit    sync.Once
	listingUseCaseInit       sync.Once
	inquiryRepositoryInit    sync.Once
	inquiryUseCaseInit       sync.Once
	statsRepositoryInit      sync.Once
	statsUseCaseInit         sync.Once
	messageRepositoryInit    sync.Once
	mailerInit               sync.Once
	secretServiceInit        sync.Once
	dispatchUseCaseInit      sync.Once
	eventRepositoryInit      sync.Once
	botDetectorInit          sync.Once
	visitorHasherInit        sync.Once
	trackUseCaseInit         sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// CounterStore returns the rate-limit counter store. A Redis store is
// used when REDIS_URL is configured; otherwise the in-process memory
// store serves single-node deployments.
func (c *Container) CounterStore() (ratelimit.CounterStore, error) {
	c.counterStoreInit.Do(func() {
		if c.config.RedisURL == "" {
			c.Logger().Info("rate limiting using in-process counter store")
			c.counterStore = ratelimit.NewMemoryStore()
			return
		}

		opts, err := redis.ParseURL(c.config.RedisURL)
		if err != nil {
			c.initErrors["counterStore"] = fmt.Errorf("failed to parse redis URL: %w", err)
			return
		}
		c.redisClient = redis.NewClient(opts)
		c.counterStore = ratelimit.NewRedisStore(c.redisClient)
	})
	if storedErr, exists := c.initErrors["counterStore"]; exists {
		return nil, storedErr
	}
	return c.counterStore, nil
}

// Limiter returns the shared rate limiter.
func (c *Container) Limiter() (*ratelimit.Limiter, error) {
	c.limiterInit.Do(func() {
		store, err := c.CounterStore()
		if err != nil {
			c.initErrors["limiter"] = fmt.Errorf("failed to get counter store for limiter: %w", err)
			return
		}
		c.limiter = ratelimit.NewLimiter(store)
	})
	if storedErr, exists := c.initErrors["limiter"]; exists {
		return nil, storedErr
	}
	return c.limiter, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op
// implementation is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with all routes registered.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(c.config, db, c.Logger(), provider)
	if err := c.registerRoutes(server); err != nil {
		return nil, err
	}
	return server, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}
	if store, ok := c.counterStore.(*ratelimit.MemoryStore); ok {
		store.Close()
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}
	return nil
}

// initLogger creates a structured JSON logger from the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
