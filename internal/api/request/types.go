package request

// RegisterUserRequest is the request body for creating a user
type RegisterUserRequest struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Registered  bool   `json:"isRegistered"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

// RecordTimeRequest is the request body for overwriting a user's accrued time
type RecordTimeRequest struct {
	Time int64 `json:"time"`
}
