package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/storage"
)

// Config holds configuration for the user service
type Config struct {
	// BoardLimit caps how many entries a leaderboard query returns
	BoardLimit int
}

// DefaultConfig returns default user service configuration
func DefaultConfig() Config {
	return Config{
		BoardLimit: 100,
	}
}

// Service handles user registration, lookup, time persistence and
// leaderboard projection
type Service struct {
	storage storage.Storage
	clock   clockwork.Clock
	logger  *slog.Logger

	boardLimit int
}

// New creates a new user Service
func New(storage storage.Storage, clock clockwork.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.BoardLimit == 0 {
		cfg.BoardLimit = DefaultConfig().BoardLimit
	}
	return &Service{
		storage:    storage,
		clock:      clock,
		logger:     logger,
		boardLimit: cfg.BoardLimit,
	}
}

// Register creates a user record for a client-supplied identifier.
// A registered signup must carry a username, and usernames are unique:
// a clash returns model.ErrUsernameTaken so the caller can prompt again.
// Country fields are fixed here and never change afterwards.
func (s *Service) Register(ctx context.Context, id model.UserID, username string, registered bool, loc *model.Location) (*model.User, error) {
	if registered && username == "" {
		return nil, model.ErrUsernameRequired
	}

	if username != "" {
		_, err := s.storage.GetUserByUsername(ctx, username)
		if err == nil {
			return nil, model.ErrUsernameTaken
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
	}

	now := s.clock.Now()
	user := &model.User{
		ID:         id,
		Username:   username,
		Registered: registered,
		CreatedAt:  now,
		LastActive: now,
	}
	if loc != nil {
		user.Country = loc.Country
		user.CountryCode = loc.CountryCode
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.Bool("registered", user.Registered),
		slog.String("country_code", user.CountryCode),
	)

	return user, nil
}

// Get looks up a user by identifier
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// RecordTime overwrites the user's accrued total with the given value.
// Last write wins: an out-of-order push with a smaller value is accepted
// as-is (a documented property of the persistence contract).
func (s *Service) RecordTime(ctx context.Context, id model.UserID, seconds int64) error {
	return s.storage.UpdateUserTime(ctx, id, seconds, s.clock.Now())
}

// Leaderboard returns the ranked entries for a scope, descending by time.
// An empty board is a valid result.
func (s *Service) Leaderboard(ctx context.Context, scope, countryCode string) ([]model.LeaderboardEntry, error) {
	var users []*model.User
	var err error

	if scope == model.ScopeCountry {
		users, err = s.storage.TopUsersByCountry(ctx, countryCode, s.boardLimit)
	} else {
		users, err = s.storage.TopUsers(ctx, s.boardLimit)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, model.EntryFromUser(u))
	}
	return entries, nil
}
