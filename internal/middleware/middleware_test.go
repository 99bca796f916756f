package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-1234567890"

func signed(t *testing.T, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := signed(t, "user-7", time.Now().Add(time.Hour))
	expired := signed(t, "user-7", time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		url    string
		header string
		status int
		body   string
	}{
		{name: "bearer header", url: "/me", header: "Bearer " + valid, status: http.StatusOK, body: "user-7"},
		{name: "query token", url: "/me?access_token=" + valid, status: http.StatusOK, body: "user-7"},
		{name: "missing", url: "/me", status: http.StatusUnauthorized},
		{name: "wrong scheme", url: "/me", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "expired", url: "/me", header: "Bearer " + expired, status: http.StatusUnauthorized, body: "Token has expired"},
		{name: "garbage", url: "/me", header: "Bearer nope", status: http.StatusUnauthorized},
	}

	r := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	_, err := NewRateLimiter("lots")
	assert.Error(t, err)

	l, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(l))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
