package model

import "time"

// Leaderboard scopes
const (
	ScopeGlobal  = "global"
	ScopeCountry = "country"
)

// LeaderboardEntry is a read-only projection of a User for ranking display.
// Entries are produced pre-sorted descending by time; consumers never
// recompute the ordering.
type LeaderboardEntry struct {
	UserID      UserID    `json:"userId"`
	Username    string    `json:"username,omitempty"`
	Country     string    `json:"country,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
	Time        int64     `json:"time"`
	Registered  bool      `json:"registered"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

// EntryFromUser projects a User into a LeaderboardEntry
func EntryFromUser(u *User) LeaderboardEntry {
	return LeaderboardEntry{
		UserID:      u.ID,
		Username:    u.Username,
		Country:     u.Country,
		CountryCode: u.CountryCode,
		Time:        u.TotalTime,
		Registered:  u.Registered,
		LastUpdate:  u.LastActive,
	}
}
