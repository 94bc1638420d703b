package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// User records are JSON values; the two ranking views are sorted sets
// scored by accrued time, updated alongside every user write.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline keeps the record, the username index and the ranking sets
	// updated together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	if user.Username != "" {
		pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	}
	pipe.ZAdd(ctx, globalBoardKey(), redis.Z{Score: float64(user.TotalTime), Member: string(user.ID)})
	if user.CountryCode != "" {
		pipe.ZAdd(ctx, countryBoardKey(user.CountryCode), redis.Z{Score: float64(user.TotalTime), Member: string(user.ID)})
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) UpdateUserTime(ctx context.Context, id model.UserID, seconds int64, lastActive time.Time) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.TotalTime = seconds
	user.LastActive = lastActive
	return s.SaveUser(ctx, user)
}

func (s *Storage) TopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	return s.topFromBoard(ctx, globalBoardKey(), limit)
}

func (s *Storage) TopUsersByCountry(ctx context.Context, countryCode string, limit int) ([]*model.User, error) {
	return s.topFromBoard(ctx, countryBoardKey(countryCode), limit)
}

// topFromBoard reads a ranking sorted set highest-score-first and resolves
// each member to its user record
func (s *Storage) topFromBoard(ctx context.Context, key string, limit int) ([]*model.User, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := s.client.ZRevRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, model.UserID(id))
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				// Ranking member without a record; skip rather than fail the board
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
