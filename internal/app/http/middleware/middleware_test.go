package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"artmarket-admin/internal/auth/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(iss *token.Issuer, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(iss), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": *Actor(c), "role": Role(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	iss := token.NewIssuer("secret", time.Hour)
	admin, err := iss.Issue(token.Claims{UserID: 3, Email: "a@example.com", Role: "ADMIN"})
	require.NoError(t, err)
	user, err := iss.Issue(token.Claims{UserID: 4, Email: "u@example.com", Role: "USER"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"raw token", admin, http.StatusOK},
		{"bearer token", "Bearer " + admin, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", user, http.StatusForbidden},
	}

	r := authRouter(iss, "ADMIN", "GALLERY")
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", b)
	})

	body := `{"name":"<script>x()</script>Ana","tags":["<b>bold</b>"],"nested":{"bio":"<i>hi</i>"},"price":1250.5}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ana", got["name"])
	assert.Equal(t, []any{"bold"}, got["tags"])
	assert.Equal(t, map[string]any{"bio": "hi"}, got["nested"])
	assert.Equal(t, 1250.5, got["price"])

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{bad"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
