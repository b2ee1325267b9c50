// Package galleries serves gallery management to admins and gallery owners.
package galleries

import (
	"context"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	domain "artmarket-admin/internal/domain/galleries"
	"artmarket-admin/internal/domain/users"
	svc "artmarket-admin/internal/service/galleries"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, in svc.Input, actor users.Actor) (*domain.Gallery, error)
	Get(ctx context.Context, id uint) (*domain.Gallery, error)
	GetPublic(ctx context.Context, slug string) (*domain.Gallery, error)
	Update(ctx context.Context, id uint, in svc.Input, actor users.Actor) (*domain.Gallery, error)
	Delete(ctx context.Context, id uint, actor users.Actor) error
	BulkDelete(ctx context.Context, ids []uint, actor users.Actor) ([]svc.BulkResult, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.Gallery, int64, error)
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
	g, err := h.svc.Create(c.Request.Context(), in, middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Gallery created successfully", g)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	g, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Gallery fetched successfully", g)
}

func (h *Handler) GetPublic(c *gin.Context) {
	g, err := h.svc.GetPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Gallery fetched successfully", g)
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
	g, err := h.svc.Update(c.Request.Context(), id, in, middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Gallery updated successfully", g)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, middleware.CurrentActor(c)); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Gallery deleted successfully", nil)
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	res, err := h.svc.BulkDelete(c.Request.Context(), req.IDs, middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Bulk delete processed", res)
}

// List shows every gallery to admins and only their own to GALLERY users.
func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	q := svc.ListQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if actor := middleware.CurrentActor(c); !actor.IsAdmin() {
		q.OwnerID = &actor.ID
	}
	items, total, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Galleries fetched successfully", items, total)
}

func (h *Handler) Public(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Search: c.Query("search"),
		Status: domain.StatusActive,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Galleries fetched successfully", items, total)
}

// Register mounts /gallery. manage is the ADMIN-or-GALLERY chain.
func (h *Handler) Register(rg *gin.RouterGroup, manage ...gin.HandlerFunc) {
	g := rg.Group("/gallery")
	g.GET("/public", h.Public)
	g.GET("/public/:slug", h.GetPublic)

	a := g.Group("", manage...)
	a.POST("", h.Create)
	a.GET("", h.List)
	a.POST("/bulk-delete", h.BulkDelete)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}
