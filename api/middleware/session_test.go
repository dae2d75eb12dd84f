package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionEcho(t *testing.T, seen *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = CartSessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestCartSessionPrefersHeader(t *testing.T) {
	var seen string
	mw := CartSession(SessionOptions{CookieName: "cart_session"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(CartSessionHeader, "tab-1")
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "cookie-session"})
	resp := httptest.NewRecorder()
	mw(sessionEcho(t, &seen)).ServeHTTP(resp, req)

	assert.Equal(t, "tab-1", seen)
	assert.Equal(t, "tab-1", resp.Header().Get(CartSessionHeader))
	assert.Empty(t, resp.Result().Cookies())
}

func TestCartSessionFallsBackToCookie(t *testing.T) {
	var seen string
	mw := CartSession(SessionOptions{CookieName: "cart_session"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "cookie-session"})
	resp := httptest.NewRecorder()
	mw(sessionEcho(t, &seen)).ServeHTTP(resp, req)

	assert.Equal(t, "cookie-session", seen)
	assert.Empty(t, resp.Result().Cookies())
}

func TestCartSessionIssuesCookie(t *testing.T) {
	var seen string
	mw := CartSession(SessionOptions{}, nil)

	resp := httptest.NewRecorder()
	mw(sessionEcho(t, &seen)).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	require.NotEmpty(t, seen)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, seen, resp.Header().Get(CartSessionHeader))
}

func TestCartSessionIgnoresMalformedCookie(t *testing.T) {
	var seen string
	mw := CartSession(SessionOptions{CookieName: "cart_session"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "../etc"})
	resp := httptest.NewRecorder()
	mw(sessionEcho(t, &seen)).ServeHTTP(resp, req)

	assert.NotEqual(t, "../etc", seen)
	assert.Len(t, resp.Result().Cookies(), 1)
}

func TestCartSessionRejectsInvalidHeader(t *testing.T) {
	called := false
	mw := CartSession(SessionOptions{}, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(CartSessionHeader, "has spaces/and slashes")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, called)
}

func TestCartSessionFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", CartSessionFromContext(req.Context()))
}
