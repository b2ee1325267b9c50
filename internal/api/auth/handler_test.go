package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"artmarket-admin/internal/app/http/middleware"
	"artmarket-admin/internal/apperr"
	"artmarket-admin/internal/auth/token"
	domain "artmarket-admin/internal/domain/users"
	svc "artmarket-admin/internal/service/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	users   map[string]*domain.User
	changed *svc.ChangePasswordInput
}

func (f *fakeService) Register(_ context.Context, in svc.RegisterInput) (*svc.AuthResult, error) {
	if _, ok := f.users[in.Email]; ok {
		return nil, apperr.Conflict("User already exists")
	}
	u := &domain.User{ID: uint(len(f.users) + 1), Name: in.Name, Email: in.Email, Role: domain.RoleUser}
	f.users[in.Email] = u
	return &svc.AuthResult{Token: "tok", User: u}, nil
}

func (f *fakeService) Login(_ context.Context, in svc.LoginInput) (*svc.AuthResult, error) {
	u, ok := f.users[in.Email]
	if !ok || in.Password != "secret123" {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return &svc.AuthResult{Token: "tok", User: u}, nil
}

func (f *fakeService) GoogleLogin(context.Context, svc.GoogleProfile) (*svc.AuthResult, error) {
	return nil, apperr.Unauthorized("unused")
}

func (f *fakeService) Get(_ context.Context, id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeService) ChangePassword(_ context.Context, _ uint, in svc.ChangePasswordInput) error {
	f.changed = &in
	return nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*gin.Engine, *fakeService, *token.Issuer) {
	t.Helper()
	iss := token.NewIssuer("test-secret", time.Hour)
	fs := &fakeService{users: map[string]*domain.User{}}
	r := gin.New()
	NewHandler(fs, nil).Routes(r.Group("/v1/api"), middleware.AuthMiddleware(iss))
	return r, fs, iss
}

func do(r *gin.Engine, method, path, body, auth string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", "Bearer "+auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRegisterAndLogin(t *testing.T) {
	r, _, _ := setup(t)

	w, env := do(r, http.MethodPost, "/v1/api/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Status)

	w, env = do(r, http.MethodPost, "/v1/api/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", env.Message)

	w, env = do(r, http.MethodPost, "/v1/api/auth/login", `{"email":"ada@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "tok", res["token"])

	w, _ = do(r, http.MethodPost, "/v1/api/auth/login", `{"email":"ada@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeAndChangePassword(t *testing.T) {
	r, fs, iss := setup(t)
	fs.users["ada@example.com"] = &domain.User{ID: 4, Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}
	tok, err := iss.Issue(token.Claims{UserID: 4, Email: "ada@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	w, _ := do(r, http.MethodGet, "/v1/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := do(r, http.MethodGet, "/v1/api/auth/me", "", tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "ada@example.com")

	w, _ = do(r, http.MethodPut, "/v1/api/auth/change-password", `{"oldPassword":"a","newPassword":"b"}`, tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fs.changed)
	assert.Equal(t, "b", fs.changed.NewPassword)
}

func TestGoogleDisabled(t *testing.T) {
	r, _, _ := setup(t)
	w, _ := do(r, http.MethodGet, "/v1/api/auth/google", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
