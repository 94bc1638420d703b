package model

import "time"

// UserID uniquely identifies a user across the system.
// It is generated client-side once and never changes for the lifetime of
// the identity.
type UserID string

// User represents one participant
type User struct {
	ID          UserID    `json:"userId"`
	Username    string    `json:"username,omitempty"` // set only for registered users; unique
	Country     string    `json:"country,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
	Registered  bool      `json:"isRegistered"`
	TotalTime   int64     `json:"totalTime"` // accumulated active seconds
	CreatedAt   time.Time `json:"createdAt"`
	LastActive  time.Time `json:"lastActive"`
}

// Location is a best-effort geolocation result used to pre-fill registration
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}
