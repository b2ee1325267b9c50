// Package auth serves registration, login and Google sign-in.
package auth

import (
	"context"
	"net/http"

	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	domain "artmarket-admin/internal/domain/users"
	svc "artmarket-admin/internal/service/users"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Register(ctx context.Context, in svc.RegisterInput) (*svc.AuthResult, error)
	Login(ctx context.Context, in svc.LoginInput) (*svc.AuthResult, error)
	GoogleLogin(ctx context.Context, p svc.GoogleProfile) (*svc.AuthResult, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	ChangePassword(ctx context.Context, id uint, in svc.ChangePasswordInput) error
}

type Handler struct {
	svc    Service
	google *Google
}

// NewHandler wires the auth endpoints. google may be nil when Google
// sign-in is not configured.
func NewHandler(s Service, google *Google) *Handler {
	return &Handler{svc: s, google: google}
}

func (h *Handler) Register(c *gin.Context) {
	var in svc.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}

	res, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "User registered successfully", res)
}

func (h *Handler) Login(c *gin.Context) {
	var in svc.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Login successful", res)
}

func (h *Handler) Me(c *gin.Context) {
	id := middleware.Actor(c)
	if id == nil {
		respond.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := h.svc.Get(c.Request.Context(), *id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Profile fetched successfully", u)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var in svc.ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	id := middleware.Actor(c)
	if id == nil {
		respond.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), *id, in); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Password changed successfully", nil)
}

// Routes mounts /auth on rg. authed carries the token middleware.
func (h *Handler) Routes(rg *gin.RouterGroup, authed ...gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/google", h.GoogleStart)
	g.GET("/google/callback", h.GoogleCallback)

	a := g.Group("", authed...)
	a.GET("/me", h.Me)
	a.PUT("/change-password", h.ChangePassword)
}
