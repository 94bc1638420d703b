package storage

import (
	"context"
	"time"

	"github.com/donothingclub/donothing/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// UpdateUserTime overwrites a user's accrued total (last-write-wins)
	// and stamps their last-active time
	UpdateUserTime(ctx context.Context, id model.UserID, seconds int64, lastActive time.Time) error

	// Ranking operations, ordered descending by accrued time
	TopUsers(ctx context.Context, limit int) ([]*model.User, error)
	TopUsersByCountry(ctx context.Context, countryCode string, limit int) ([]*model.User, error)
}
