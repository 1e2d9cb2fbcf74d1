package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-feed/docs"
	"github.com/sbilibin2017/gw-feed/internal/events"
	"github.com/sbilibin2017/gw-feed/internal/handlers"
	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/middlewares"
	"github.com/sbilibin2017/gw-feed/internal/repositories"
	"github.com/sbilibin2017/gw-feed/internal/services"
	"github.com/sbilibin2017/gw-feed/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	storageLocal = "local"
	storageMinio = "minio"
)

// config is the full application configuration read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisEnabled      bool
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	TokenCacheTTL     time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	StorageBackend string
	StorageDir     string
	Minio          storage.MinioConfig

	UploadMaxSize      int64
	UploadAllowedTypes []string
}

// @title gw-feed API
// @version 1.0.0
// @description Social feed backend: registration, login, token-gated posting, paged feed and image uploads
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file, when present, and
// fills every setting from the environment or its default.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getBool := func(key, defaultValue string) (bool, error) {
		v, err := strconv.ParseBool(getEnv(key, defaultValue))
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	if cfg.RedisEnabled, err = getBool("REDIS_ENABLED", "true"); err != nil {
		return
	}
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	ttl, err := getInt("TOKEN_CACHE_TTL_SECOND", "300")
	if err != nil {
		return
	}
	cfg.TokenCacheTTL = time.Duration(ttl) * time.Second

	// Kafka config
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "posts")

	// Storage config
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", storageLocal)
	cfg.StorageDir = getEnv("STORAGE_DIR", "res")
	cfg.Minio = storage.MinioConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    getEnv("MINIO_BUCKET", "uploads"),
	}
	if cfg.Minio.UseSSL, err = getBool("MINIO_USE_SSL", "false"); err != nil {
		return
	}
	if cfg.StorageBackend != storageLocal && cfg.StorageBackend != storageMinio {
		err = fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend)
		return
	}

	// Upload config
	maxSize, err := getInt("UPLOAD_MAX_SIZE", strconv.Itoa(5<<20))
	if err != nil {
		return
	}
	cfg.UploadMaxSize = int64(maxSize)
	cfg.UploadAllowedTypes = splitList(getEnv("UPLOAD_ALLOWED_TYPES", ""))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// run initializes the logger, database, optional Redis cache, object storage
// and event publisher, then serves HTTP until ctx is cancelled or a
// termination signal arrives.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return err
	}

	// Connect to Redis
	var tokenCache services.TokenCache
	if cfg.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection: %w", err)
		}
		defer rdb.Close()
		tokenCache = repositories.NewTokenCacheRepository(rdb, cfg.TokenCacheTTL)
	} else {
		logger.Log.Info("Redis disabled, tokens are validated against PostgreSQL only")
	}

	// Object storage
	var objects services.ObjectStore
	switch cfg.StorageBackend {
	case storageMinio:
		store, err := storage.NewMinioStore(ctx, cfg.Minio)
		if err != nil {
			return err
		}
		objects = store
	default:
		store, err := storage.NewLocalStore(cfg.StorageDir)
		if err != nil {
			return err
		}
		objects = store
	}
	logger.Log.Infow("Object storage ready", "backend", cfg.StorageBackend)

	// Event publisher
	var publisher interface {
		services.PostPublisher
		Close() error
	} = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		logger.Log.Infow("Publishing post events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Log.Errorw("failed to close event publisher", "error", err)
		}
	}()

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, repositories.GetTxFromContext)
	tokenReadRepo := repositories.NewTokenReadRepository(db)
	tokenWriteRepo := repositories.NewTokenWriteRepository(db, repositories.GetTxFromContext)
	postReadRepo := repositories.NewPostReadRepository(db)
	postWriteRepo := repositories.NewPostWriteRepository(db)
	txManager := repositories.NewTxManager(db)

	// Initialize services
	credentialStore := services.NewCredentialStore(userReadRepo, userWriteRepo)
	tokenStore := services.NewTokenStore(tokenReadRepo, tokenWriteRepo, tokenCache)
	authService := services.NewAuthService(credentialStore, tokenStore, txManager)
	postService := services.NewPostService(tokenStore, userReadRepo, postWriteRepo, publisher)
	feedService := services.NewFeedService(postReadRepo)
	uploadService := services.NewUploadService(objects, cfg.UploadMaxSize, cfg.UploadAllowedTypes)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	createPostHandler := handlers.NewCreatePostHandler(postService)
	postsHandler := handlers.NewPostsHandler(feedService)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.UploadMaxSize)
	resourceHandler := handlers.NewResourceHandler(uploadService)
	healthHandler := handlers.NewHealthHandler(db, buildVersion)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Post("/register", registerHandler)
	r.Post("/register-user", registerHandler)
	r.Post("/login", loginHandler)
	r.Post("/create-post", createPostHandler)
	r.Get("/posts", postsHandler)
	r.Get("/posts/{page}", postsHandler)
	r.Post("/upload", uploadHandler)
	r.Get("/res/{name}", resourceHandler)
	r.Get("/health", healthHandler)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	docs.SwaggerInfo.Version = buildVersion
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
