package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/donothingclub/donothing/internal/dependencies/random"
	"github.com/donothingclub/donothing/internal/services/location"
	"github.com/donothingclub/donothing/internal/services/user"
	"github.com/donothingclub/donothing/internal/storage"
	"github.com/donothingclub/donothing/internal/storage/memory"
	redisstorage "github.com/donothingclub/donothing/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired server components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clockwork.Clock
	Random random.Random

	// Services
	UserService     *user.Service
	LocationService *location.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// UserConfig holds user service settings (optional)
	UserConfig user.Config
	// LocationConfig holds location service settings (optional)
	LocationConfig location.Config
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clockwork.NewRealClock()
	rnd := random.New()

	userCfg := cfg.UserConfig
	if userCfg.BoardLimit == 0 {
		userCfg = user.DefaultConfig()
	}

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		UserService:     user.New(store, clk, userCfg, logger),
		LocationService: location.New(cfg.LocationConfig),
	}, nil
}
