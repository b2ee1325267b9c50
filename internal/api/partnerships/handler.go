// Package partnerships takes partnership applications and lets admins review them.
package partnerships

import (
	"context"
	"errors"
	"io"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	domain "artmarket-admin/internal/domain/partnerships"
	svc "artmarket-admin/internal/service/partnerships"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Apply(ctx context.Context, in svc.ApplyInput) (*domain.Partnership, error)
	Get(ctx context.Context, id uint) (*domain.Partnership, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.Partnership, int64, error)
	Delete(ctx context.Context, id uint) error
	Approve(ctx context.Context, id uint, note string, actor *uint) (*domain.Partnership, error)
	Reject(ctx context.Context, id uint, note string, actor *uint) (*domain.Partnership, error)
}

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *Handler) Apply(c *gin.Context) {
	var in svc.ApplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	p, err := h.svc.Apply(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Partnership application submitted successfully", p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Partnership fetched successfully", p)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Partnerships fetched successfully", items, total)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Partnership deleted successfully", nil)
}

func (h *Handler) review(c *gin.Context, approve bool) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	// The note is optional: an empty body binds to nothing.
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.BadRequest(c, err)
		return
	}

	var p *domain.Partnership
	msg := "Partnership approved successfully"
	if approve {
		p, err = h.svc.Approve(c.Request.Context(), id, req.Note, middleware.Actor(c))
	} else {
		p, err = h.svc.Reject(c.Request.Context(), id, req.Note, middleware.Actor(c))
		msg = "Partnership rejected successfully"
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, msg, p)
}

func (h *Handler) Approve(c *gin.Context) { h.review(c, true) }

func (h *Handler) Reject(c *gin.Context) { h.review(c, false) }

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/partnership")
	g.POST("", h.Apply)

	a := g.Group("", admin...)
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id/approve", h.Approve)
	a.PUT("/:id/reject", h.Reject)
	a.DELETE("/:id", h.Delete)
}
