package httpapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SetupCreatesAccountAndSetsCookies(t *testing.T) {
	e := newTestEnv(t, Options{})

	rec := e.do(t, http.MethodPost, "/auth/login", map[string]any{"username": " alice ", "password": "pass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body loginResponse
	env := decodeEnvelope(t, rec, &body)
	assert.True(t, env.Success)
	assert.Equal(t, "Account created successfully", body.Message)
	assert.Equal(t, "alice", body.Username)
	assert.NotContains(t, rec.Body.String(), "$2a$")

	cookies := cookieMap(rec)
	access, refresh := cookies[accessCookieName], cookies[refreshCookieName]
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	assert.Equal(t, 900, access.MaxAge)
	assert.Equal(t, 604800, refresh.MaxAge)
	for _, c := range []*http.Cookie{access, refresh} {
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Secure)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	}

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]any{"username": "alice", "password": "pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, "Login successful", body.Message)
}

func TestLogin_ProductionCookies(t *testing.T) {
	e := newTestEnv(t, Options{Production: true})

	cookies := e.login(t, "alice", "pass")
	for _, name := range []string{accessCookieName, refreshCookieName} {
		c := cookies[name]
		require.NotNil(t, c, name)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	}
}

func TestLogin_Errors(t *testing.T) {
	e := newTestEnv(t, Options{})
	e.login(t, "alice", "pass")

	cases := []struct {
		name   string
		body   any
		status int
		msg    string
	}{
		{"bad json", "{", http.StatusBadRequest, "Invalid JSON body"},
		{"short password", map[string]any{"username": "alice", "password": "abc"}, http.StatusBadRequest, "Password must be at least 4 characters"},
		{"short username", map[string]any{"username": "a", "password": "pass"}, http.StatusBadRequest, "Username must be at least 2 characters"},
		{"wrong password", map[string]any{"username": "alice", "password": "nope"}, http.StatusUnauthorized, "Invalid username or password"},
		{"unknown user", map[string]any{"username": "bob", "password": "pass"}, http.StatusUnauthorized, "Invalid username or password"},
		{"setup duplicate", map[string]any{"username": "alice", "password": "pass", "isSetup": true}, http.StatusBadRequest, "Username already exists. Please choose a different username."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/auth/login", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			env := decodeEnvelope(t, rec, nil)
			assert.False(t, env.Success)
			assert.Equal(t, tc.msg, env.Error)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestRefresh(t *testing.T) {
	e := newTestEnv(t, Options{})
	cookies := e.login(t, "alice", "pass")

	rec := e.do(t, http.MethodPost, "/auth/refresh", nil, cookies[refreshCookieName])
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body messageResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, "Token refreshed successfully", body.Message)

	got := cookieMap(rec)
	require.NotNil(t, got[accessCookieName])
	assert.Nil(t, got[refreshCookieName], "refresh cookie must be left alone")
	assert.Equal(t, 900, got[accessCookieName].MaxAge)

	// The new access token authenticates as the same user.
	rec = e.do(t, http.MethodGet, "/auth/check", nil, got[accessCookieName])
	var check checkResponse
	decodeEnvelope(t, rec, &check)
	assert.True(t, check.IsAuthenticated)
	require.NotNil(t, check.Username)
	assert.Equal(t, "alice", *check.Username)
}

func TestRefresh_Rejects(t *testing.T) {
	e := newTestEnv(t, Options{})
	cookies := e.login(t, "alice", "pass")

	rec := e.do(t, http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No refresh token provided", decodeEnvelope(t, rec, nil).Error)

	// An access token presented as a refresh token is rejected.
	swapped := &http.Cookie{Name: refreshCookieName, Value: cookies[accessCookieName].Value}
	rec = e.do(t, http.MethodPost, "/auth/refresh", nil, swapped)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired refresh token", decodeEnvelope(t, rec, nil).Error)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t, Options{})

	// No cookies at all still succeeds.
	for i := 0; i < 2; i++ {
		rec := e.do(t, http.MethodPost, "/auth/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body messageResponse
		decodeEnvelope(t, rec, &body)
		assert.Equal(t, "Logged out successfully", body.Message)

		cookies := cookieMap(rec)
		for _, name := range []string{accessCookieName, refreshCookieName} {
			require.NotNil(t, cookies[name], name)
			assert.Empty(t, cookies[name].Value)
			assert.Negative(t, cookies[name].MaxAge)
		}
	}
}

func TestCheck(t *testing.T) {
	e := newTestEnv(t, Options{})

	rec := e.do(t, http.MethodGet, "/auth/check", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"isAuthenticated":false,"needsSetup":true,"username":null}}`, rec.Body.String())

	cookies := e.login(t, "alice", "pass")

	rec = e.do(t, http.MethodGet, "/auth/check", nil)
	assert.JSONEq(t, `{"success":true,"data":{"isAuthenticated":false,"needsSetup":false,"username":null}}`, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/auth/check", nil, cookies[accessCookieName])
	assert.JSONEq(t, `{"success":true,"data":{"isAuthenticated":true,"needsSetup":false,"username":"alice"}}`, rec.Body.String())
}

func TestClearUsers(t *testing.T) {
	e := newTestEnv(t, Options{})
	e.login(t, "alice", "pass")

	rec := e.do(t, http.MethodDelete, "/auth/clear-users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body clearUsersResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, 1, body.DeletedCount)

	n, err := e.store.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClearUsers_HiddenInProduction(t *testing.T) {
	e := newTestEnv(t, Options{Production: true})

	rec := e.do(t, http.MethodDelete, "/auth/clear-users", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
