// Package pricing exposes artwork pricing and global adjustments over HTTP.
package pricing

import (
	"context"
	"net/http"
	"strings"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/pricing"
	svc "artmarket-admin/internal/service/pricing"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Upsert(ctx context.Context, in svc.UpsertInput, actor *uint) (*domain.ArtworkPricing, bool, error)
	Get(ctx context.Context, artworkID, slug string) (*domain.ArtworkPricing, error)
	GetByID(ctx context.Context, id string) (*domain.ArtworkPricing, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.ArtworkPricing, int64, error)
	Delete(ctx context.Context, id string, actor *uint) error
	CreateGlobalAdjustment(ctx context.Context, in svc.GlobalInput, actor *uint) (*svc.GlobalResult, error)
	ActiveGlobalAdjustment(ctx context.Context) (*domain.GlobalPricingAdjustment, error)
	ListGlobalAdjustments(ctx context.Context, limit, offset int) ([]domain.GlobalPricingAdjustment, int64, error)
	DeactivateGlobalAdjustment(ctx context.Context, id string) error
	Quote(ctx context.Context, in svc.QuoteInput) (*svc.Quote, error)
	Reset(ctx context.Context, id string, actor *uint) (*domain.ArtworkPricing, error)
	ResetAll(ctx context.Context, actor *uint) (int64, error)
}

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

type globalResponse struct {
	Adjustment       *domain.GlobalPricingAdjustment `json:"adjustment"`
	AffectedCount    int                             `json:"affectedCount"`
	DeactivatedCount int64                           `json:"deactivatedCount"`
}

type quoteResponse struct {
	domain.ArtworkPricing
	Source             string `json:"source"`
	GlobalAdjustmentID string `json:"globalAdjustmentId,omitempty"`
}

func (h *Handler) CreateOrUpdate(c *gin.Context) {
	var in svc.UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}

	p, created, err := h.svc.Upsert(c.Request.Context(), in, middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	if created {
		respond.Created(c, "Artwork pricing created successfully", p)
		return
	}
	respond.OK(c, "Artwork pricing updated successfully", p)
}

// Get is public: it serves the stored price of an artwork by id or slug.
// Stored prices already include every cascaded global adjustment. An
// artwork without a record gets a 404 carrying the active adjustment so the
// caller can price it from its own original price.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.Get(ctx, c.Query("artworkId"), c.Query("artworkSlug"))
	if apperr.IsKind(err, apperr.KindNotFound) {
		g, gerr := h.svc.ActiveGlobalAdjustment(ctx)
		if gerr == nil && g != nil {
			respond.FailWith(c, http.StatusNotFound, apperr.As(err).Message, gin.H{"globalAdjustment": g})
			return
		}
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Artwork pricing fetched successfully", p)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Artwork pricing fetched successfully", p)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Artist:   c.Query("artist"),
		Active:   params.Bool(c, "active"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Artwork pricing fetched successfully", items, total)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Artwork pricing deleted successfully", nil)
}

func (h *Handler) CreateGlobalAdjustment(c *gin.Context) {
	var in svc.GlobalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}

	res, err := h.svc.CreateGlobalAdjustment(c.Request.Context(), in, middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Global adjustment applied successfully", globalResponse{
		Adjustment:       res.Adjustment,
		AffectedCount:    res.Affected,
		DeactivatedCount: res.Deactivated,
	})
}

func (h *Handler) ActiveGlobalAdjustment(c *gin.Context) {
	g, err := h.svc.ActiveGlobalAdjustment(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if g == nil {
		respond.OK(c, "No active global adjustment", nil)
		return
	}
	respond.OK(c, "Active global adjustment fetched successfully", g)
}

func (h *Handler) ListGlobalAdjustments(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.ListGlobalAdjustments(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Global adjustments fetched successfully", items, total)
}

func (h *Handler) DeactivateGlobalAdjustment(c *gin.Context) {
	if err := h.svc.DeactivateGlobalAdjustment(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Global adjustment deactivated successfully", nil)
}

// ApplyGlobalAdjustment prices an artwork on the fly without persisting.
func (h *Handler) ApplyGlobalAdjustment(c *gin.Context) {
	var in svc.QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}

	q, err := h.svc.Quote(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}

	msg := "Global adjustment applied"
	switch q.Source {
	case svc.SourceStored:
		msg = "Stored pricing found"
	case svc.SourceOriginal:
		msg = "No applicable global adjustment"
	}
	respond.OK(c, msg, quoteResponse{
		ArtworkPricing:     q.Pricing,
		Source:             q.Source,
		GlobalAdjustmentID: q.GlobalAdjustmentID,
	})
}

func (h *Handler) Reset(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respond.Fail(c, http.StatusBadRequest, "id is required")
		return
	}
	p, err := h.svc.Reset(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Artwork pricing reset successfully", p)
}

func (h *Handler) ResetAll(c *gin.Context) {
	n, err := h.svc.ResetAll(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "All artwork pricing reset successfully", gin.H{"resetCount": n})
}

// Register mounts the pricing routes on rg. admin carries the ADMIN-only
// middleware chain.
func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/artwork-pricing")
	g.GET("/get", h.Get)
	g.POST("/apply-global-adjustment", h.ApplyGlobalAdjustment)

	a := g.Group("", admin...)
	a.POST("/create-or-update", h.CreateOrUpdate)
	a.POST("/global-adjustment", h.CreateGlobalAdjustment)
	a.GET("/global-adjustment/active", h.ActiveGlobalAdjustment)
	a.PUT("/global-adjustment/:id/deactivate", h.DeactivateGlobalAdjustment)
	a.GET("/global-adjustments", h.ListGlobalAdjustments)
	a.PUT("/reset/:id", h.Reset)
	a.POST("/reset-all", h.ResetAll)
	a.GET("/list", h.List)
	a.GET("/record/:id", h.GetByID)
	a.DELETE("/:id", h.Delete)
}
