package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/socialpanel/internal/adapter/driving/session"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := session.FromContext(r.Context())
		_, _ = w.Write([]byte(id))
	})
}

func TestMiddleware_IssuesAndReusesID(t *testing.T) {
	h := session.NewManager(testSecret).Middleware(echoSession())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	first := rec.Body.String()
	require.NotEmpty(t, first)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, first, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies(), "existing session must not be reissued")
}

func TestMiddleware_ForeignCookieGetsNewID(t *testing.T) {
	other := session.NewManager([]byte("ffffffffffffffffffffffffffffffff")).Middleware(echoSession())
	rec := httptest.NewRecorder()
	other.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	foreignID := rec.Body.String()
	foreign := rec.Result().Cookies()[0]

	h := session.NewManager(testSecret).Middleware(echoSession())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(foreign)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Body.String())
	assert.NotEqual(t, foreignID, rec.Body.String())
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := session.FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
