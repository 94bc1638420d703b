package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donothingclub/donothing/internal/model"
)

// Client is an HTTP client for the remote timer service. Each operation is a
// single request/response round trip; there is no retry logic, failures
// propagate to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new service client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the service
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes the client recognizes and maps back to sentinel errors
const (
	codeUserNotFound  = "USER_NOT_FOUND"
	codeUsernameTaken = "USERNAME_TAKEN"
)

// FetchUser looks up an existing user.
// Returns model.ErrUserNotFound when the identifier is unknown; callers
// treat that as the signal to proceed to registration.
func (c *Client) FetchUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveLocation performs a best-effort geolocation lookup used only to
// pre-fill the registration prompt
func (c *Client) ResolveLocation(ctx context.Context) (*model.Location, error) {
	var loc model.Location
	if err := c.do(ctx, http.MethodGet, "/location", nil, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// registerRequest is the body for user creation
type registerRequest struct {
	UserID      string `json:"userId"`
	Username    string `json:"username,omitempty"`
	Registered  bool   `json:"isRegistered"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// RegisterUser creates a user record, anonymous or named.
// Returns model.ErrUsernameTaken on a uniqueness conflict so callers can
// prompt for a different username.
func (c *Client) RegisterUser(ctx context.Context, id, username string, registered bool, loc *model.Location) (*model.User, error) {
	req := registerRequest{
		UserID:     id,
		Username:   username,
		Registered: registered,
	}
	if loc != nil {
		req.Country = loc.Country
		req.CountryCode = loc.CountryCode
	}

	var user model.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// persistTimeRequest is the body for time persistence
type persistTimeRequest struct {
	Time int64 `json:"time"`
}

// PersistTime overwrites the server-held total time for a user.
// Last-write-wins; there are no delta or merge semantics.
func (c *Client) PersistTime(ctx context.Context, userID string, seconds int64) error {
	return c.do(ctx, http.MethodPut, "/users/"+userID+"/time", persistTimeRequest{Time: seconds}, nil)
}

// FetchLeaderboard retrieves the ranked entries for a scope.
// scope is model.ScopeGlobal or model.ScopeCountry; countryCode is required
// only for the country scope. Entries arrive pre-sorted descending by time;
// an empty slice is a valid result.
func (c *Client) FetchLeaderboard(ctx context.Context, scope, countryCode string) ([]model.LeaderboardEntry, error) {
	path := "/leaderboard/global"
	if scope == model.ScopeCountry {
		path = "/leaderboard/country/" + countryCode
	}

	entries := []model.LeaderboardEntry{}
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Health checks service availability
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// do performs an HTTP request and decodes the JSON response
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.decodeError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// decodeError maps the service error envelope back to sentinel errors where
// the caller needs to distinguish them
func (c *Client) decodeError(status int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != "" {
		switch errResp.Error.Code {
		case codeUserNotFound:
			return model.ErrUserNotFound
		case codeUsernameTaken:
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("%s (%s)", errResp.Error.Message, errResp.Error.Code)
	}
	return fmt.Errorf("HTTP %d: %s", status, string(body))
}
