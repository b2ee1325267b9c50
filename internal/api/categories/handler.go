package categories

import (
	"context"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	domain "artmarket-admin/internal/domain/categories"
	svc "artmarket-admin/internal/service/categories"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, in svc.Input) (*domain.Category, error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	Update(ctx context.Context, id uint, in svc.Input) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q svc.ListQuery) ([]domain.Category, int64, error)
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
	cat, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Category created successfully", cat)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Category fetched successfully", cat)
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
	cat, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Category updated successfully", cat)
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
	respond.OK(c, "Category deleted successfully", nil)
}

func (h *Handler) list(c *gin.Context, activeOnly bool) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Search:     c.Query("search"),
		ActiveOnly: activeOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Categories fetched successfully", items, total)
}

// Public lists active categories only.
func (h *Handler) Public(c *gin.Context) { h.list(c, true) }

func (h *Handler) List(c *gin.Context) { h.list(c, false) }

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/category")
	g.GET("/public", h.Public)

	a := g.Group("", admin...)
	a.POST("", h.Create)
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}
