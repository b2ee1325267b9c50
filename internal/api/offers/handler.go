// Package offers takes buyer offers publicly and lets admins answer them.
package offers

import (
	"context"
	"errors"
	"io"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	domain "artmarket-admin/internal/domain/offers"
	svc "artmarket-admin/internal/service/offers"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, in svc.CreateInput, buyerID *uint) (*domain.Offer, error)
	Get(ctx context.Context, id uint) (*domain.Offer, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.Offer, int64, error)
	Delete(ctx context.Context, id uint) error
	Accept(ctx context.Context, id uint, note string, actor *uint) (*domain.Offer, error)
	Reject(ctx context.Context, id uint, note string, actor *uint) (*domain.Offer, error)
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

func (h *Handler) Create(c *gin.Context) {
	var in svc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	o, err := h.svc.Create(c.Request.Context(), in, middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Offer submitted successfully", o)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	o, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Offer fetched successfully", o)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Status:    c.Query("status"),
		ArtworkID: c.Query("artworkId"),
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Offers fetched successfully", items, total)
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
	respond.OK(c, "Offer deleted successfully", nil)
}

func (h *Handler) review(c *gin.Context, accept bool) {
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

	var o *domain.Offer
	msg := "Offer accepted successfully"
	if accept {
		o, err = h.svc.Accept(c.Request.Context(), id, req.Note, middleware.Actor(c))
	} else {
		o, err = h.svc.Reject(c.Request.Context(), id, req.Note, middleware.Actor(c))
		msg = "Offer rejected successfully"
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, msg, o)
}

func (h *Handler) Accept(c *gin.Context) { h.review(c, true) }

func (h *Handler) Reject(c *gin.Context) { h.review(c, false) }

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/offer")
	g.POST("", h.Create)

	a := g.Group("", admin...)
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id/accept", h.Accept)
	a.PUT("/:id/reject", h.Reject)
	a.DELETE("/:id", h.Delete)
}
