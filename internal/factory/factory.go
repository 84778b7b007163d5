package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/founder-srm/foundathon/internal/catalog"
	"github.com/founder-srm/foundathon/internal/dependencies/clock"
	"github.com/founder-srm/foundathon/internal/dependencies/random"
	"github.com/founder-srm/foundathon/internal/services/auth"
	"github.com/founder-srm/foundathon/internal/services/lock"
	"github.com/founder-srm/foundathon/internal/services/stats"
	"github.com/founder-srm/foundathon/internal/services/submission"
	"github.com/founder-srm/foundathon/internal/services/team"
	"github.com/founder-srm/foundathon/internal/storage"
	"github.com/founder-srm/foundathon/internal/storage/memory"
	pgstorage "github.com/founder-srm/foundathon/internal/storage/postgres"
	redisstorage "github.com/founder-srm/foundathon/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Domain
	Catalog *catalog.Catalog

	// Services
	LockService       *lock.Service
	TeamController    *team.Controller
	AuthService       *auth.Service
	SubmissionService *submission.Service
	StatsService      *stats.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StatementCap overrides the per-statement team cap (optional)
	// If zero, defaults to catalog.DefaultCap
	StatementCap int
	// LockConfig holds the lock signing secret and TTL
	// Secret is required outside of tests
	LockConfig lock.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := pgstorage.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		if err := pgStore.Migrate(ctx); err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	lockCfg := cfg.LockConfig
	if len(lockCfg.Secret) == 0 {
		return nil, errors.New("LockConfig.Secret is required")
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, cfg.StatementCap, lockCfg, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	statementCap int,
	lockCfg lock.Config,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if statementCap == 0 {
		statementCap = catalog.DefaultCap
	}
	if lockCfg.TTL == 0 {
		lockCfg.TTL = lock.DefaultConfig().TTL
	}

	cat := catalog.Default(statementCap)

	lockService := lock.New(cat, store, clk, lockCfg, logger)
	teamController := team.NewController(store, cat, lockService, clk, logger)
	authService := auth.New(store, clk, rnd, authCfg, logger)
	submissionService := submission.New(store, clk, logger)
	statsService := stats.New(store, cat)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Catalog:           cat,
		LockService:       lockService,
		TeamController:    teamController,
		AuthService:       authService,
		SubmissionService: submissionService,
		StatsService:      statsService,
	}
}
