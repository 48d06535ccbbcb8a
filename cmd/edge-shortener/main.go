package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	analyticshttp "edge-shortener/internal/analytics/delivery/http"
	"edge-shortener/internal/analytics/anonymize"
	"edge-shortener/internal/analytics/enrichment"
	analyticspostgres "edge-shortener/internal/analytics/repository/postgres"
	analyticssqlite "edge-shortener/internal/analytics/repository/sqlite"
	analyticsusecase "edge-shortener/internal/analytics/usecase"
	"edge-shortener/internal/config"
	"edge-shortener/internal/database"
	httpdelivery "edge-shortener/internal/delivery/http"
	"edge-shortener/internal/infra/eventbus"
	"edge-shortener/internal/qrservice/cache"
	qrhttp "edge-shortener/internal/qrservice/delivery/http"
	"edge-shortener/internal/qrservice/imageverify"
	qrusecase "edge-shortener/internal/qrservice/usecase"
	"edge-shortener/internal/ratelimit"
	"edge-shortener/internal/safefetch"
	linkhttp "edge-shortener/internal/urlservice/delivery/http"
	linkredis "edge-shortener/internal/urlservice/repository/redis"
	linksqlite "edge-shortener/internal/urlservice/repository/sqlite"
	linkusecase "edge-shortener/internal/urlservice/usecase"

	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newLogger(format string) (*zap.Logger, error) {
	if format == config.LogFormatConsole {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("invalid configuration: " + err.Error())
	}

	logger, err := newLogger(cfg.LogFormat)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database initialized", zap.String("path", cfg.DatabasePath))

	checks := []linkhttp.ReadinessCheck{{Name: "database", Ping: db.PingContext}}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		checks = append(checks, linkhttp.ReadinessCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	var linkStore linkusecase.LinkStore
	switch cfg.LinkStore {
	case config.LinkStoreRedis:
		linkStore = linkredis.NewLinkStore(rdb)
	default:
		linkStore = linksqlite.NewLinkStore(db)
	}
	logger.Info("link store selected", zap.String("store", cfg.LinkStore))

	clickStore, closeClicks, err := openClickStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeClicks()
	if cfg.ClickDatabaseURL != "" {
		checks = append(checks, linkhttp.ReadinessCheck{Name: "clicks", Ping: clickStore.Ping})
	}

	var geoIP analyticsusecase.GeoIPResolver = enrichment.NoGeoIP{}
	if cfg.GeoIPDBPath != "" {
		resolver, err := enrichment.NewGeoIPResolver(cfg.GeoIPDBPath)
		if err != nil {
			logger.Warn("GeoIP database not available, location resolution disabled",
				zap.String("path", cfg.GeoIPDBPath),
				zap.Error(err),
			)
		} else {
			defer resolver.Close()
			geoIP = resolver
			logger.Info("GeoIP database loaded", zap.String("path", cfg.GeoIPDBPath))
		}
	}

	hasher, err := newVisitorHasher(cfg.VisitorHashKey, logger)
	if err != nil {
		return err
	}

	analytics := analyticsusecase.NewAnalyticsService(
		clickStore,
		geoIP,
		enrichment.NewDeviceDetector(),
		enrichment.NewRefererClassifier(),
		hasher,
		linkusecase.NewLinkOwners(linkStore),
		logger,
	)

	bus := eventbus.NewEventBus(eventbus.NewZapLoggerAdapter(logger))
	events, err := eventbus.NewRouter(bus, eventbus.DefaultRetryPolicy, eventbus.NewZapLoggerAdapter(logger))
	if err != nil {
		return err
	}
	events.AddHandler(linkusecase.NewClickCounter(linkStore, logger))
	events.AddHandler(analyticsusecase.NewClickRecorder(analytics, logger))

	var limiter ratelimit.Limiter
	if rdb != nil {
		limiter = ratelimit.NewRedis(rdb, cfg.RateLimit)
	} else {
		local := ratelimit.NewLocal(cfg.RateLimit)
		local.StartCleanup(ctx, 10*time.Minute, time.Hour)
		limiter = local
	}

	qrCache, err := newQRCache(cfg, rdb, logger)
	if err != nil {
		return err
	}
	qr := qrusecase.NewQRService(
		safefetch.New(logger, safefetch.WithTimeout(cfg.LogoFetchTimeout)),
		imageverify.NewVerifier(cfg.LogoMaxBytes, imageverify.DefaultMaxDimension),
		qrCache,
		cfg.BaseURL,
		logger,
	)

	tracker := linkusecase.NewClickTracker(bus, logger)
	router := httpdelivery.NewRouter(httpdelivery.Handlers{
		Links:     linkhttp.NewHandler(linkusecase.NewRedirectService(linkStore, logger), tracker, checks, logger),
		QR:        qrhttp.NewHandler(qr, logger),
		Analytics: analyticshttp.NewHandler(analytics, logger),
	}, limiter, cfg.AnalyticsToken, logger)

	if cfg.AnalyticsToken == "" {
		logger.Warn("ANALYTICS_TOKEN not set, analytics export is disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return events.Run(gctx)
	})
	g.Go(func() error {
		<-events.Running()
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("base_url", cfg.BaseURL),
			zap.Int("rate_limit", cfg.RateLimit),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
		if err := tracker.Drain(shutdownCtx); err != nil {
			logger.Warn("click events still in flight at shutdown", zap.Error(err))
		}
		if err := events.Close(); err != nil {
			logger.Error("failed to close event router", zap.Error(err))
		}
		return bus.Close()
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openClickStore keeps clicks next to links unless a dedicated Postgres
// database is configured.
func openClickStore(ctx context.Context, cfg *config.Config, db *sql.DB) (analyticsusecase.ClickStore, func(), error) {
	if cfg.ClickDatabaseURL == "" {
		return analyticssqlite.NewClickStore(db), func() {}, nil
	}

	pg, err := analyticspostgres.Open(ctx, cfg.ClickDatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return analyticspostgres.NewClickStore(pg), func() { pg.Close() }, nil
}

func newVisitorHasher(key string, logger *zap.Logger) (*anonymize.Hasher, error) {
	if key != "" {
		return anonymize.NewHasher([]byte(key))
	}

	generated, err := anonymize.GenerateKey()
	if err != nil {
		return nil, err
	}
	logger.Warn("VISITOR_HASH_KEY not set, visitor hashes will not survive a restart")
	return anonymize.NewHasher(generated)
}

func newQRCache(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (cache.Cache, error) {
	if rdb != nil {
		return cache.NewRedisCache(rdb, cache.DefaultTTL, logger), nil
	}
	if cfg.QRCacheSize <= 0 {
		return cache.Noop{}, nil
	}
	memory, err := cache.NewMemoryCache(cfg.QRCacheSize)
	if err != nil {
		return nil, err
	}
	return memory, nil
}
