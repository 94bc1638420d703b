package redis

import (
	"fmt"

	"github.com/donothingclub/donothing/internal/model"
)

// Key prefix for all application data
const keyPrefix = "donothing"

// userKey returns the Redis key for a User record
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// globalBoardKey returns the Redis key for the global ranking sorted set
func globalBoardKey() string {
	return fmt.Sprintf("%s:lb:global", keyPrefix)
}

// countryBoardKey returns the Redis key for a country ranking sorted set
func countryBoardKey(countryCode string) string {
	return fmt.Sprintf("%s:lb:country:%s", keyPrefix, countryCode)
}
