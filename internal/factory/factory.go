package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/heartquiz/heartgame-go/internal/dependencies/clock"
	"github.com/heartquiz/heartgame-go/internal/dependencies/random"
	"github.com/heartquiz/heartgame-go/internal/puzzle"
	"github.com/heartquiz/heartgame-go/internal/services/account"
	"github.com/heartquiz/heartgame-go/internal/services/credential"
	"github.com/heartquiz/heartgame-go/internal/services/round"
	"github.com/heartquiz/heartgame-go/internal/services/score"
	"github.com/heartquiz/heartgame-go/internal/storage"
	"github.com/heartquiz/heartgame-go/internal/storage/memory"
	redisstorage "github.com/heartquiz/heartgame-go/internal/storage/redis"
	sqlitestorage "github.com/heartquiz/heartgame-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock        clock.Clock
	Random       random.Random
	PuzzleSource puzzle.Source

	// Services
	CredentialManager *credential.Manager
	AccountService    *account.Service
	RoundRegistry     *round.Registry
	ScoreLedger       *score.Ledger
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds SQLite settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config

	// PuzzleSource overrides the HTTP puzzle source (used in tests)
	PuzzleSource puzzle.Source
	// PuzzleConfig configures the HTTP puzzle source when no override is given
	PuzzleConfig puzzle.Config

	// RoundConfig configures round TTL and sweeping (optional)
	RoundConfig round.Config
	// CredentialConfig configures password hashing (optional)
	CredentialConfig credential.Config

	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(*cfg.SQLiteConfig)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	source := cfg.PuzzleSource
	if source == nil {
		source = puzzle.NewHTTPSource(cfg.PuzzleConfig)
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, source, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, source puzzle.Source, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	credentials := credential.New(cfg.CredentialConfig)
	accounts := account.New(store, credentials, clk, rnd, logger)
	registry := round.New(source, clk, rnd, cfg.RoundConfig, logger)
	ledger := score.New(store, clk, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		PuzzleSource:      source,
		CredentialManager: credentials,
		AccountService:    accounts,
		RoundRegistry:     registry,
		ScoreLedger:       ledger,
	}
}
