package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orgchart-backend/infrastructure/config"
	"orgchart-backend/pkg/auth"
	"orgchart-backend/pkg/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp common.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func authedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-User", user.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_DevelopmentBypass(t *testing.T) {
	cfg := &config.Config{Environment: "development", NoticeBufferSize: 1}
	handler := Authenticate(cfg)(authedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Header().Get("X-User"))
}

func TestAuthenticate_ProductionRequiresConfiguredSecret(t *testing.T) {
	cfg := &config.Config{Environment: "production", NoticeBufferSize: 1}
	handler := Authenticate(cfg)(authedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, rec))
}

func TestAuthenticate_RateLimitPerIP(t *testing.T) {
	cfg := &config.Config{Environment: "development", NoticeBufferSize: 1}
	handler := Authenticate(cfg)(authedEcho(t))

	var rec *httptest.ResponseRecorder
	for i := 0; i <= rateLimitPerMinute; i++ {
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.RemoteAddr = "203.0.113.7:4242"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMIT", decodeErrorCode(t, rec))
}

func TestAuthenticate_BearerToken(t *testing.T) {
	cfg := &config.Config{
		Environment:      "production",
		JWTSecret:        "test-secret",
		JWTIssuer:        "orgchart-backend",
		NoticeBufferSize: 1,
	}
	handler := Authenticate(cfg)(authedEcho(t))

	sign := func(t *testing.T, subject string) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				Issuer:    "orgchart-backend",
				Audience:  jwt.ClaimStrings{"orgchart-api"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return signed
	}

	t.Run("valid token passes with the caller attached", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer "+sign(t, "user-1"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Header().Get("X-User"))
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
