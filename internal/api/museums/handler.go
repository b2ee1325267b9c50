package museums

import (
	"context"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	domain "artmarket-admin/internal/domain/museums"
	"artmarket-admin/internal/domain/users"
	svc "artmarket-admin/internal/service/museums"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, in svc.Input, actor users.Actor) (*domain.Museum, error)
	Get(ctx context.Context, id uint) (*domain.Museum, error)
	GetPublic(ctx context.Context, slug string) (*domain.Museum, error)
	Update(ctx context.Context, id uint, in svc.Input, actor users.Actor) (*domain.Museum, error)
	Delete(ctx context.Context, id uint, actor users.Actor) error
	AddEvent(ctx context.Context, id uint, in svc.EventInput, actor users.Actor) (*domain.Museum, error)
	RemoveEvent(ctx context.Context, id uint, eventID string, actor users.Actor) (*domain.Museum, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.Museum, int64, error)
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
	m, err := h.svc.Create(c.Request.Context(), in, middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Museum created successfully", m)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Museum fetched successfully", m)
}

func (h *Handler) GetPublic(c *gin.Context) {
	m, err := h.svc.GetPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Museum fetched successfully", m)
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
	m, err := h.svc.Update(c.Request.Context(), id, in, middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Museum updated successfully", m)
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
	respond.OK(c, "Museum deleted successfully", nil)
}

func (h *Handler) AddEvent(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var in svc.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	m, err := h.svc.AddEvent(c.Request.Context(), id, in, middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Event added successfully", m)
}

func (h *Handler) RemoveEvent(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	m, err := h.svc.RemoveEvent(c.Request.Context(), id, c.Param("eventId"), middleware.CurrentActor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Event removed successfully", m)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	q := svc.ListQuery{Search: c.Query("search"), Limit: limit, Offset: offset}
	if active := params.Bool(c, "active"); active != nil && *active {
		q.ActiveOnly = true
	}
	if actor := middleware.CurrentActor(c); !actor.IsAdmin() {
		q.OwnerID = &actor.ID
	}
	items, total, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Museums fetched successfully", items, total)
}

func (h *Handler) Public(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Search:     c.Query("search"),
		ActiveOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Museums fetched successfully", items, total)
}

// Register mounts /museum. manage is the ADMIN-or-MUSEUM chain.
func (h *Handler) Register(rg *gin.RouterGroup, manage ...gin.HandlerFunc) {
	g := rg.Group("/museum")
	g.GET("/public", h.Public)
	g.GET("/public/:slug", h.GetPublic)

	a := g.Group("", manage...)
	a.POST("", h.Create)
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
	a.POST("/:id/events", h.AddEvent)
	a.DELETE("/:id/events/:eventId", h.RemoveEvent)
}
