package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donothingclub/donothing/internal/api"
	"github.com/donothingclub/donothing/internal/api/response"
	"github.com/donothingclub/donothing/internal/client"
	"github.com/donothingclub/donothing/internal/factory"
	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/services/location"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use the production factory
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		UserService:     app.UserService,
		LocationService: app.LocationService,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func registerBody(id, username string, registered bool) map[string]any {
	return map[string]any{
		"userId":       id,
		"username":     username,
		"isRegistered": registered,
		"country":      "Australia",
		"countryCode":  "AU",
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterUser(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/users", registerBody("u_abc", "alice", true), nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var got response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "u_abc", got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.Registered)
	assert.Equal(t, "AU", got.CountryCode)
	assert.Equal(t, int64(0), got.TotalTime)
}

func TestRegisterUserRequiresID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/users", registerBody("", "alice", true), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestRegisterUserRejectsRegisteredWithoutUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/users", registerBody("u_abc", "", true), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/users", registerBody("u_1", "alice", true), nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/users", registerBody("u_2", "alice", true), nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_TAKEN")
}

func TestGetUserNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/users/u_missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "USER_NOT_FOUND")
}

func TestGetUserAfterRegistration(t *testing.T) {
	ts := newTestServer(t)
	_ = ts.request(http.MethodPost, "/users", registerBody("u_abc", "alice", true), nil)

	rr := ts.request(http.MethodGet, "/users/u_abc", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
}

func TestRecordTime(t *testing.T) {
	ts := newTestServer(t)
	_ = ts.request(http.MethodPost, "/users", registerBody("u_abc", "alice", true), nil)

	rr := ts.request(http.MethodPut, "/users/u_abc/time", map[string]int64{"time": 120}, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/users/u_abc", nil, nil)
	var got response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(120), got.TotalTime)
}

func TestRecordTimeRejectsNegative(t *testing.T) {
	ts := newTestServer(t)
	_ = ts.request(http.MethodPost, "/users", registerBody("u_abc", "alice", true), nil)

	rr := ts.request(http.MethodPut, "/users/u_abc/time", map[string]int64{"time": -1}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordTimeUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/users/u_missing/time", map[string]int64{"time": 10}, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLocationFromHeader(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/location", nil, map[string]string{"CF-IPCountry": "NZ"})
	require.Equal(t, http.StatusOK, rr.Code)

	var got response.Location
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "NZ", got.CountryCode)
	assert.Equal(t, "New Zealand", got.Country)
}

func TestLocationUnavailableWithoutHint(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/location", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "LOCATION_UNAVAILABLE")
}

func TestEmptyLeaderboardIsEmptyArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/leaderboard/global", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestLeaderboardOrdering(t *testing.T) {
	ts := newTestServer(t)
	_ = ts.request(http.MethodPost, "/users", registerBody("u_1", "alice", true), nil)
	_ = ts.request(http.MethodPost, "/users", registerBody("u_2", "bob", true), nil)
	_ = ts.request(http.MethodPut, "/users/u_1/time", map[string]int64{"time": 50}, nil)
	_ = ts.request(http.MethodPut, "/users/u_2/time", map[string]int64{"time": 100}, nil)

	rr := ts.request(http.MethodGet, "/leaderboard/global", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "u_2", entries[0].UserID)
	assert.Equal(t, int64(100), entries[0].Time)
	assert.Equal(t, "u_1", entries[1].UserID)
}

func TestCountryLeaderboardScoping(t *testing.T) {
	ts := newTestServer(t)
	_ = ts.request(http.MethodPost, "/users", registerBody("u_1", "alice", true), nil)
	_ = ts.request(http.MethodPost, "/users", map[string]any{
		"userId": "u_2", "username": "bob", "isRegistered": true, "countryCode": "NZ",
	}, nil)

	rr := ts.request(http.MethodGet, "/leaderboard/country/AU", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "u_1", entries[0].UserID)
}

// TestClientServerRoundTrip drives the real service client against a live
// server: unknown user, registration, persistence, leaderboard.
func TestClientServerRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		LocationConfig: location.Config{DefaultCountry: "Australia", DefaultCountryCode: "AU"},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		UserService:     app.UserService,
		LocationService: app.LocationService,
	})

	server := httptest.NewServer(router)
	defer server.Close()

	c := client.NewClient(server.URL)
	ctx := context.Background()

	// Unknown identifier drives the registration flow
	_, err = c.FetchUser(ctx, "u_e2e")
	require.ErrorIs(t, err, model.ErrUserNotFound)

	// Location pre-fill
	loc, err := c.ResolveLocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AU", loc.CountryCode)

	// Registration
	u, err := c.RegisterUser(ctx, "u_e2e", "alice", true, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(0), u.TotalTime)

	// Duplicate username surfaces distinctly
	_, err = c.RegisterUser(ctx, "u_other", "alice", true, nil)
	require.ErrorIs(t, err, model.ErrUsernameTaken)

	// Persist and observe on the boards
	require.NoError(t, c.PersistTime(ctx, "u_e2e", 10))

	global, err := c.FetchLeaderboard(ctx, model.ScopeGlobal, "")
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, int64(10), global[0].Time)

	country, err := c.FetchLeaderboard(ctx, model.ScopeCountry, "AU")
	require.NoError(t, err)
	require.Len(t, country, 1)
}
