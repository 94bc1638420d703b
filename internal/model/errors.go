package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUsernameRequired = errors.New("username is required for registered users")

	// Location errors
	ErrLocationUnavailable = errors.New("location unavailable")
)
