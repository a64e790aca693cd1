package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadely/arcade/internal/api"
	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/factory"
	"github.com/arcadely/arcade/internal/testutil"
)

// testServer wires the full router against a TestApp with scripted
// clock and randomness
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		Storage:            app.Storage,
		AuthService:        app.AuthService,
		GameService:        app.GameService,
		BonusService:       app.BonusService,
		LeaderboardService: app.LeaderboardService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// envelope mirrors the wire format for assertions
type envelope struct {
	Status   int             `json:"status"`
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Metadata json.RawMessage `json:"metadata"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	return e
}

// register creates an account and returns a login token
func (ts *testServer) register(t *testing.T, username, password string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Token string `json:"token"`
	}
	e := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	e := decodeEnvelope(t, rr)
	assert.True(t, e.Success)
	assert.Equal(t, http.StatusCreated, e.Status)

	rr = ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Token string        `json:"token"`
		User  response.User `json:"user"`
	}
	e = decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "alice", data.User.Username)
	assert.Equal(t, "alice", data.User.DisplayName)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "ALICE",
		"password": "different",
	}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	e := decodeEnvelope(t, rr)
	assert.False(t, e.Success)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "al",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetOwnProfile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile response.RankedUser
	e := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(1), profile.Rank)
	assert.Equal(t, 0, profile.Score)
}

func TestGetProfileByUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/users/alice", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChangeDisplayName(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPatch, "/api/v1/users/me/display-name", map[string]string{
		"displayName": "Queen Alice",
	}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	var profile response.RankedUser
	e := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &profile))
	assert.Equal(t, "Queen Alice", profile.DisplayName)
}

func TestDeleteAccount(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodDelete, "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/alice", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGuessNumberFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	ts.app.MockRandom.QueueDistinct([]int{50, 70, 30})

	rr := ts.request(http.MethodPost, "/api/v1/games/guess-number", map[string]int{"number": 40}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	e := decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "[ ROUND 1 ]")
	assert.Contains(t, e.Message, "too low")

	rr = ts.request(http.MethodPost, "/api/v1/games/guess-number", map[string]int{"number": 70}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	e = decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "SECRET number (70)")

	var profile response.RankedUser
	require.NoError(t, json.Unmarshal(e.Data, &profile))
	assert.Equal(t, 3, profile.Score)
	assert.Equal(t, 2, profile.Attempts)
	assert.Equal(t, 1, profile.Rounds)
}

func TestGuessNumberRejectsOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/games/guess-number", map[string]int{"number": 0}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestArrangeNumbersFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	ts.app.MockRandom.QueueDistinct([]int{4, 3, 5, 1, 2})

	rr := ts.request(http.MethodPost, "/api/v1/games/arrange-numbers",
		map[string][]int{"numbers": {1, 2, 3, 4, 5}}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	e := decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "hint")

	rr = ts.request(http.MethodPost, "/api/v1/games/arrange-numbers",
		map[string][]int{"numbers": {4, 3, 5, 1, 2}}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	e = decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "earned 2 points")

	var profile response.RankedUser
	require.NoError(t, json.Unmarshal(e.Data, &profile))
	assert.Equal(t, 2, profile.Score)
}

func TestRockPaperScissorsDuel(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.register(t, "alice", "secret123")
	ts.register(t, "bob", "secret123")

	// Give both players points via bonus claims
	ts.app.MockRandom.QueueChance(true, true)
	bobToken := loginToken(t, ts, "bob", "secret123")
	rr := ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Opponent plays scissors against rock
	ts.app.MockRandom.QueueIntn(2)
	rr = ts.request(http.MethodPost, "/api/v1/games/rock-paper-scissors", map[string]any{
		"opponentUsername": "bob",
		"choice":           "rock",
		"stake":            2,
	}, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)

	e := decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "You won")

	var data struct {
		User     response.RankedUser `json:"user"`
		Opponent response.RankedUser `json:"opponent"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &data))
	assert.Equal(t, 4, data.User.Score)
	assert.Equal(t, 0, data.Opponent.Score)
	assert.Equal(t, int64(1), data.User.Rank)
}

func TestRockPaperScissorsStakeValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")
	ts.register(t, "bob", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/games/rock-paper-scissors", map[string]any{
		"opponentUsername": "bob",
		"choice":           "rock",
		"stake":            0,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/rock-paper-scissors", map[string]any{
		"opponentUsername": "bob",
		"choice":           "rock",
		"stake":            5,
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRockPaperScissorsSelfOpponentConflicts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	ts.app.MockRandom.QueueChance(true)
	rr := ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/rock-paper-scissors", map[string]any{
		"opponentUsername": "Alice",
		"choice":           "rock",
		"stake":            1,
	}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRockPaperScissorsPractice(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	ts.app.MockRandom.QueueIntn(1) // paper beats rock
	rr := ts.request(http.MethodPost, "/api/v1/games/rock-paper-scissors/practice",
		map[string]string{"choice": "rock"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	e := decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "You lost")

	// Practice never touches the account
	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	var profile response.RankedUser
	e = decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &profile))
	assert.Equal(t, 0, profile.Attempts)
}

func TestBonusClaimAndCooldown(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	e := decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "+1 point")

	// Claiming again inside the window is rejected with the remaining wait
	ts.app.MockClock.Advance(30 * time.Minute)
	rr = ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, token)
	assert.Equal(t, http.StatusTooEarly, rr.Code)
	e = decodeEnvelope(t, rr)
	assert.Contains(t, e.Message, "2 hours, 30 minutes, and 0 seconds")

	ts.app.MockClock.Advance(3 * time.Hour)
	rr = ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLeaderboardRankingAndPagination(t *testing.T) {
	ts := newTestServer(t)

	// Three accounts with different scores via lucky bonus claims
	tokens := map[string]string{
		"alice": ts.register(t, "alice", "secret123"),
		"bob":   ts.register(t, "bob", "secret123"),
		"carol": ts.register(t, "carol", "secret123"),
	}
	ts.app.MockRandom.QueueChance(true) // alice gets +2
	rr := ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, tokens["alice"])
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/bonus/claim", nil, tokens["bob"]) // +1
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.RankedUser
	e := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, int64(1), entries[0].Rank)
	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, "carol", entries[2].Username)

	var meta response.ListMetadata
	require.NoError(t, json.Unmarshal(e.Metadata, &meta))
	assert.Equal(t, int64(3), meta.TotalUsers)
	assert.Equal(t, 3, meta.ReturnedUsers)
	assert.Nil(t, meta.Pagination)

	// Second page of one
	rr = ts.request(http.MethodGet, "/api/v1/leaderboard?page=2&limit=1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	e = decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, int64(2), entries[0].Rank)

	require.NoError(t, json.Unmarshal(e.Metadata, &meta))
	require.NotNil(t, meta.Pagination)
	assert.Equal(t, 2, meta.Pagination.Page)
	assert.Equal(t, int64(3), meta.Pagination.TotalItems)
	assert.Equal(t, 3, meta.Pagination.TotalPages)
}

func TestLeaderboardPageWithoutLimitRejected(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?page=2", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUserSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "secret123")
	ts.register(t, "malice", "secret123")
	ts.register(t, "bob", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/users?usernameKeyword=lic&sortDirection=asc", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.User
	e := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &entries))
	assert.Len(t, entries, 2)

	// Direction is required
	rr = ts.request(http.MethodGet, "/api/v1/users?usernameKeyword=lic", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func loginToken(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Token string `json:"token"`
	}
	e := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(e.Data, &data))
	return data.Token
}
