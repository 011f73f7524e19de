package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedEcho() http.Handler {
	mw := RequireAuth(testSecret, false)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := userIDFromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]int{"id": userID})
	}))
}

func requestWithToken(t *testing.T, ttl time.Duration) *http.Request {
	t.Helper()
	token, err := issueToken(7, []byte(testSecret), ttl)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/fetch_list", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return req
}

func sessionCookieFrom(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestIssueAndParseToken(t *testing.T) {
	token, err := issueToken(42, []byte(testSecret), tokenTTL)
	require.NoError(t, err)

	userID, expiresAt, err := parseToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), expiresAt, time.Minute)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := issueToken(42, []byte(testSecret), tokenTTL)
	require.NoError(t, err)

	_, _, err = parseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := issueToken(42, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	_, _, err = parseToken(token, []byte(testSecret))
	assert.Error(t, err)
}

func TestRequireAuthMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fetch_list", nil)

	protectedEcho().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAcceptsBearerHeader(t *testing.T) {
	token, err := issueToken(7, []byte(testSecret), tokenTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/fetch_list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedEcho().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 7}`, rec.Body.String())
}

func TestRequireAuthRefreshesExpiringToken(t *testing.T) {
	req := requestWithToken(t, 3*time.Hour)
	rec := httptest.NewRecorder()

	protectedEcho().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 7}`, rec.Body.String())

	cookie := sessionCookieFrom(rec.Result())
	require.NotNil(t, cookie, "expected a replacement session cookie")

	userID, expiresAt, err := parseToken(cookie.Value, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), expiresAt, time.Minute)
}

func TestRequireAuthLeavesFreshTokenAlone(t *testing.T) {
	req := requestWithToken(t, tokenTTL)
	rec := httptest.NewRecorder()

	protectedEcho().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, sessionCookieFrom(rec.Result()))
}
