package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *authFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := newAuthFixture(t)
	h := NewHandler(f.service, "http://localhost:3000")

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	return r, f
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginResponseDoesNotRevealAccountExistence(t *testing.T) {
	r, f := newTestRouter(t)

	known := postJSON(r, "/api/v1/auth/login", gin.H{"email": "known@ur.ac.rw"})
	require.Equal(t, http.StatusOK, known.Code)
	f.mailer.waitLink(t)

	// Same address again (now known) and a fresh one must yield the same
	// status and the same body shape.
	again := postJSON(r, "/api/v1/auth/login", gin.H{"email": "known@ur.ac.rw"})
	require.Equal(t, http.StatusOK, again.Code)
	f.mailer.waitLink(t)

	assert.JSONEq(t, known.Body.String(), again.Body.String())
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/api/v1/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestMagicLoginRedirectsWithSession(t *testing.T) {
	r, f := newTestRouter(t)

	require.Equal(t, http.StatusOK, postJSON(r, "/api/v1/auth/login", gin.H{"email": "s@ur.ac.rw"}).Code)
	token := f.mailer.waitLink(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/magic-login?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "http://localhost:3000/auth/callback?access_token=")
}

func TestExchangeTokenErrorMapping(t *testing.T) {
	r, f := newTestRouter(t)

	// Unknown token: 401.
	w := postJSON(r, "/api/v1/auth/access-token", gin.H{"token": "ffffffffffffffff"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")

	// Consumed token: 409 on the second use.
	require.Equal(t, http.StatusOK, postJSON(r, "/api/v1/auth/login", gin.H{"email": "s@ur.ac.rw"}).Code)
	token := f.mailer.waitLink(t)

	first := postJSON(r, "/api/v1/auth/access-token", gin.H{"token": token})
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "access_token")

	second := postJSON(r, "/api/v1/auth/access-token", gin.H{"token": token})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "LINK_ALREADY_USED")
}

func TestResendRateLimitedResponse(t *testing.T) {
	r, f := newTestRouter(t)

	require.Equal(t, http.StatusOK, postJSON(r, "/api/v1/auth/login", gin.H{"email": "s@ur.ac.rw"}).Code)
	f.mailer.waitLink(t)

	w := postJSON(r, "/api/v1/auth/resend-magic-link", gin.H{"email": "s@ur.ac.rw"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestResendUnknownEmailLooksIdentical(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/api/v1/auth/resend-magic-link", gin.H{"email": "ghost@ur.ac.rw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Magic link resent")
}
