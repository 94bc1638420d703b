package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.users[user.ID] = &copied
	if user.Username != "" {
		s.usernameIndex[user.Username] = user.ID
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) UpdateUserTime(ctx context.Context, id model.UserID, seconds int64, lastActive time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.TotalTime = seconds
	user.LastActive = lastActive
	return nil
}

func (s *Storage) TopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top(limit, func(*model.User) bool { return true }), nil
}

func (s *Storage) TopUsersByCountry(ctx context.Context, countryCode string, limit int) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top(limit, func(u *model.User) bool { return u.CountryCode == countryCode }), nil
}

// top collects matching users sorted descending by accrued time.
// Ties break on ID so the ordering is deterministic.
func (s *Storage) top(limit int, match func(*model.User) bool) []*model.User {
	result := make([]*model.User, 0)
	for _, user := range s.users {
		if match(user) {
			copied := *user
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalTime != result[j].TotalTime {
			return result[i].TotalTime > result[j].TotalTime
		}
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
