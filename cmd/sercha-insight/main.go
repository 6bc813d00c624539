package main

// @title           Sercha Insight API
// @version         1.0
// @description     Enterprise data assistant. Routes questions to business domains, assembles prompt-ready context from the loaded records and answers them with a completion model.

// @contact.name   Sercha OSS
// @contact.url    https://github.com/custodia-labs/sercha-insight/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/custodia-labs/sercha-insight/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-insight/internal/adapters/driven/auth"
	"github.com/custodia-labs/sercha-insight/internal/adapters/driven/filestore"
	"github.com/custodia-labs/sercha-insight/internal/adapters/driven/memory"
	"github.com/custodia-labs/sercha-insight/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/sercha-insight/internal/adapters/driven/redis"
	"github.com/custodia-labs/sercha-insight/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-insight/internal/adapters/driving/http"
	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-insight/internal/core/services"
	"github.com/custodia-labs/sercha-insight/internal/registry"
	"github.com/custodia-labs/sercha-insight/internal/runtime"
	"github.com/custodia-labs/sercha-insight/internal/worker"
)

var version = "dev"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	logger, err := newLogger(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	authAdapter := auth.NewAdapter(
		getEnv("JWT_SECRET", ""),
		auth.WithIssuer(getEnv("JWT_ISSUER", "")),
		auth.WithAudience(getEnv("JWT_AUDIENCE", "")),
		auth.WithBcryptCost(getEnvInt("BCRYPT_COST", 10)),
	)

	var cleanup []func()
	app := &cli.App{
		Version: version,
		Auth:    authAdapter,
		Load: func(ctx context.Context) (*cli.Services, error) {
			svc, closers, err := wire(ctx, logger, authAdapter)
			cleanup = closers
			return svc, err
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.NewRootCmd(app).ExecuteContext(ctx)
	stop()

	for i := len(cleanup) - 1; i >= 0; i-- {
		cleanup[i]()
	}
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the adapters and services from the environment. The returned
// closers release resources in reverse order.
func wire(ctx context.Context, logger *zap.Logger, authAdapter *auth.Adapter) (*cli.Services, []func(), error) {
	var closers []func()

	// ===== Domain registry =====
	reg, err := loadRegistry()
	if err != nil {
		return nil, closers, err
	}
	logger.Info("registry loaded",
		zap.Int("domains", len(reg.Domains())),
		zap.Int("confidence_floor", reg.Router().ConfidenceFloor),
		zap.Float64("cross_ratio", reg.Router().CrossRatio))

	// ===== Conversation store (Redis, else PostgreSQL, else memory) =====
	var (
		store   driven.ConversationStore
		backend string
		pruner  worker.Pruner
	)
	maxTurns := getEnvInt("CONVERSATION_MAX_TURNS", getEnvInt("MEMORY_MAX_TURNS", 200))
	switch {
	case getEnv("REDIS_URL", "") != "":
		opts, err := redis.ParseURL(getEnv("REDIS_URL", ""))
		if err != nil {
			return nil, closers, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		closers = append(closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, closers, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisadapter.NewConversationStore(client, getEnvDuration("CONVERSATION_TTL", redisadapter.DefaultConversationTTL), maxTurns)
		backend = "redis"

	case getEnv("DATABASE_URL", "") != "":
		dbConfig := postgres.DefaultConfig(getEnv("DATABASE_URL", ""))
		dbConfig.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", dbConfig.MaxOpenConns)
		dbConfig.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", dbConfig.MaxIdleConns)
		db, err := postgres.Connect(ctx, dbConfig)
		if err != nil {
			return nil, closers, fmt.Errorf("connect to database: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := db.InitSchema(ctx); err != nil {
			return nil, closers, fmt.Errorf("initialize schema: %w", err)
		}

		var sealer *postgres.ContentSealer
		if raw := getEnv("CONVERSATION_ENCRYPTION_KEY", ""); raw != "" {
			key, err := postgres.ParseKey(raw)
			if err != nil {
				return nil, closers, fmt.Errorf("conversation encryption key: %w", err)
			}
			if sealer, err = postgres.NewContentSealer(key); err != nil {
				return nil, closers, err
			}
			logger.Info("conversation content encryption enabled")
		}
		pgStore := postgres.NewConversationStore(db, sealer, logger)
		store, pruner = pgStore, pgStore
		backend = "postgres"

	default:
		store = memory.NewConversationStore(maxTurns)
		backend = "memory"
	}
	logger.Info("conversation store ready", zap.String("backend", backend))

	rt := runtime.NewServices(domain.NewRuntimeConfig(backend))
	closers = append(closers, func() { _ = rt.Close() })

	// ===== Dataset =====
	loader := filestore.NewLoader(getEnv("DATA_DIR", "./data"))
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, closers, fmt.Errorf("load dataset: %w", err)
	}
	rt.Catalog().Swap(ds)
	logger.Info("dataset loaded",
		zap.String("dir", loader.Dir()),
		zap.Int("tables", len(ds.Names())),
		zap.Int("records", ds.Size()))

	dataWatch := getEnvBool("DATA_WATCH", false)
	reloadInterval := getEnvDuration("DATA_RELOAD_INTERVAL", 0)
	var watcher *filestore.Watcher
	if dataWatch || reloadInterval > 0 {
		watcher, err = filestore.NewWatcher(filestore.WatcherConfig{
			Dir:      loader.Dir(),
			Loader:   loader,
			Catalog:  rt.Catalog(),
			Logger:   logger,
			Debounce: getEnvDuration("DATA_WATCH_DEBOUNCE", filestore.DefaultDebounce),
		})
		if err != nil {
			return nil, closers, fmt.Errorf("create dataset watcher: %w", err)
		}
		closers = append(closers, watcher.Stop)
	}

	// ===== Completion service =====
	settings := &domain.CompletionSettings{
		Provider: domain.CompletionProvider(getEnv("COMPLETION_PROVIDER", string(domain.CompletionProviderAnthropic))),
		Model:    getEnv("COMPLETION_MODEL", ""),
		APIKey:   getEnv("COMPLETION_API_KEY", getEnv("ANTHROPIC_API_KEY", "")),
		BaseURL:  getEnv("COMPLETION_BASE_URL", ""),
	}
	completion, err := ai.NewFactory().CreateCompletionService(settings)
	switch {
	case err != nil:
		logger.Warn("completion service disabled", zap.Error(err))
	case completion == nil:
		logger.Warn("completion service not configured; chat will return 503",
			zap.String("provider", string(settings.Provider)))
	default:
		rt.SetCompletionService(completion)
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := completion.Ping(pingCtx); err != nil {
			logger.Warn("completion service unreachable at startup", zap.Error(err))
		}
		cancel()
		logger.Info("completion service configured",
			zap.String("provider", string(settings.Provider)),
			zap.String("model", completion.Model()))
	}

	// ===== Core services =====
	router := services.NewRouterService(reg, logger)
	contexts, err := services.NewContextService(reg, rt.Catalog(), logger)
	if err != nil {
		return nil, closers, err
	}
	chat := services.NewChatService(router, contexts, store, rt, logger)
	datasets := services.NewDatasetService(rt.Catalog())

	apiKeys, err := domain.ParseAPIKeys(getEnv("API_KEYS", ""))
	if err != nil {
		return nil, closers, fmt.Errorf("API_KEYS: %w", err)
	}
	authService := services.NewAuthService(authAdapter, apiKeys)

	// ===== Background jobs =====
	var jobs []worker.Job
	if retention := getEnvDuration("CONVERSATION_RETENTION", 0); retention > 0 && pruner != nil {
		jobs = append(jobs, worker.RetentionJob(pruner, retention, getEnvDuration("RETENTION_INTERVAL", time.Hour), logger))
	}
	if reloadInterval > 0 {
		jobs = append(jobs, worker.ReloadJob(watcher, reloadInterval))
	}
	bg := worker.NewWorker(worker.WorkerConfig{Jobs: jobs, Logger: logger})

	// ===== HTTP server =====
	httpConfig := http.DefaultConfig()
	httpConfig.Host = getEnv("HOST", httpConfig.Host)
	httpConfig.Port = getEnvInt("PORT", httpConfig.Port)
	httpConfig.Version = version
	httpConfig.AuthDisabled = getEnvBool("AUTH_DISABLED", false)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		httpConfig.CORSOrigins = strings.Split(origins, ",")
	}
	if !httpConfig.AuthDisabled && getEnv("JWT_SECRET", "") == "" && len(apiKeys) == 0 {
		logger.Warn("no JWT_SECRET or API_KEYS configured; authenticated endpoints will reject every request")
	}

	checks := map[string]http.Pinger{
		"conversations": store,
		"dataset": http.PingFunc(func(context.Context) error {
			if len(rt.Catalog().Dataset().Names()) == 0 {
				return errors.New("no tables loaded")
			}
			return nil
		}),
		"completion": http.PingFunc(func(context.Context) error {
			if rt.CompletionService() == nil {
				return domain.ErrServiceUnavailable
			}
			return nil
		}),
	}
	server := http.NewServer(httpConfig, authService, router, chat, datasets, checks, logger)

	serve := func(ctx context.Context) error {
		if dataWatch {
			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("start dataset watcher: %w", err)
			}
		}
		if err := bg.Start(ctx); err != nil {
			return err
		}
		defer bg.Stop()

		logger.Info("sercha-insight starting",
			zap.String("version", version),
			zap.Int("port", httpConfig.Port),
			zap.Bool("auth_disabled", httpConfig.AuthDisabled),
			zap.Bool("can_answer", rt.Config().CanAnswer()))
		return server.Start(ctx)
	}

	return &cli.Services{
		Router:   router,
		Chat:     chat,
		Datasets: datasets,
		Serve:    serve,
	}, closers, nil
}

// loadRegistry reads REGISTRY_FILE (or the embedded default) and applies
// ROUTER_* threshold overrides.
func loadRegistry() (*domain.Registry, error) {
	var (
		reg *domain.Registry
		err error
	)
	if path := getEnv("REGISTRY_FILE", ""); path != "" {
		reg, err = registry.Load(path)
	} else {
		reg, err = registry.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	cfg := reg.Router()
	cfg.ConfidenceFloor = getEnvInt("ROUTER_CONFIDENCE_FLOOR", cfg.ConfidenceFloor)
	cfg.CrossRatio = getEnvFloat("ROUTER_CROSS_RATIO", cfg.CrossRatio)
	return reg.WithRouter(cfg)
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseFloat(value, 64); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultValue
}
