package banners

import (
	"context"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	domain "artmarket-admin/internal/domain/banners"
	svc "artmarket-admin/internal/service/banners"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, in svc.Input) (*domain.SponsorBanner, error)
	Get(ctx context.Context, id uint) (*domain.SponsorBanner, error)
	Update(ctx context.Context, id uint, in svc.Input) (*domain.SponsorBanner, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q svc.ListQuery) ([]domain.SponsorBanner, int64, error)
	Live(ctx context.Context, placement string) ([]domain.SponsorBanner, error)
}

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

func (h *Handler) Create(c *gin.Context) {
	var in svc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Sponsor banner created successfully", b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Sponsor banner fetched successfully", b)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var in svc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	b, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Sponsor banner updated successfully", b)
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
	respond.OK(c, "Sponsor banner deleted successfully", nil)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	q := svc.ListQuery{Placement: c.Query("placement"), Limit: limit, Offset: offset}
	if active := params.Bool(c, "active"); active != nil {
		q.ActiveOnly = *active
	}
	items, total, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Sponsor banners fetched successfully", items, total)
}

// Live is public: banners currently inside their display window.
func (h *Handler) Live(c *gin.Context) {
	items, err := h.svc.Live(c.Request.Context(), c.Query("placement"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Sponsor banners fetched successfully", items, int64(len(items)))
}

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/sponsor-banner")
	g.GET("/public", h.Live)

	a := g.Group("", admin...)
	a.POST("", h.Create)
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}
