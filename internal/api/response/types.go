package response

import (
	"time"

	"github.com/donothingclub/donothing/internal/model"
)

// User is the wire representation of a user record
type User struct {
	ID          string    `json:"userId"`
	Username    string    `json:"username,omitempty"`
	Country     string    `json:"country,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
	Registered  bool      `json:"isRegistered"`
	TotalTime   int64     `json:"totalTime"`
	CreatedAt   time.Time `json:"createdAt"`
	LastActive  time.Time `json:"lastActive"`
}

// UserFromModel converts a model User to its wire representation
func UserFromModel(u *model.User) User {
	return User{
		ID:          string(u.ID),
		Username:    u.Username,
		Country:     u.Country,
		CountryCode: u.CountryCode,
		Registered:  u.Registered,
		TotalTime:   u.TotalTime,
		CreatedAt:   u.CreatedAt,
		LastActive:  u.LastActive,
	}
}

// Location is the wire representation of a geolocation result
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

// LeaderboardEntry is the wire representation of a ranking entry
type LeaderboardEntry struct {
	UserID      string    `json:"userId"`
	Username    string    `json:"username,omitempty"`
	Country     string    `json:"country,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
	Time        int64     `json:"time"`
	Registered  bool      `json:"registered"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

// LeaderboardFromModel converts ranking entries to their wire representation
func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	result := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, LeaderboardEntry{
			UserID:      string(e.UserID),
			Username:    e.Username,
			Country:     e.Country,
			CountryCode: e.CountryCode,
			Time:        e.Time,
			Registered:  e.Registered,
			LastUpdate:  e.LastUpdate,
		})
	}
	return result
}
