// Package users is the admin surface over accounts.
package users

import (
	"context"
	"net/http"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	domain "artmarket-admin/internal/domain/users"
	svc "artmarket-admin/internal/service/users"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Get(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.User, int64, error)
	Update(ctx context.Context, id uint, in svc.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Users fetched successfully", items, total)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "User fetched successfully", u)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var in svc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "User updated successfully", u)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if actor := middleware.Actor(c); actor != nil && *actor == id {
		respond.Fail(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "User deleted successfully", nil)
}

// Register mounts the admin-only /users routes.
func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/users", admin...)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
