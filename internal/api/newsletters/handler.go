package newsletters

import (
	"context"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	domain "artmarket-admin/internal/domain/newsletters"
	svc "artmarket-admin/internal/service/newsletters"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Subscribe(ctx context.Context, in svc.SubscribeInput) (*domain.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) (*domain.Subscriber, error)
	List(ctx context.Context, q svc.ListQuery) ([]domain.Subscriber, int64, error)
	Delete(ctx context.Context, id uint) error
}

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

func (h *Handler) Subscribe(c *gin.Context) {
	var in svc.SubscribeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	sub, err := h.svc.Subscribe(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Subscribed successfully", sub)
}

type unsubscribeRequest struct {
	Email string `json:"email"`
}

// Unsubscribe accepts the address in the body or as ?email= so links in
// mails work.
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req unsubscribeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, err)
			return
		}
	}
	if req.Email == "" {
		req.Email = c.Query("email")
	}
	sub, err := h.svc.Unsubscribe(c.Request.Context(), req.Email)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Unsubscribed successfully", sub)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := params.Page(c)
	items, total, err := h.svc.List(c.Request.Context(), svc.ListQuery{
		Search:     c.Query("search"),
		Subscribed: params.Bool(c, "subscribed"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Subscribers fetched successfully", items, total)
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
	respond.OK(c, "Subscriber deleted successfully", nil)
}

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/newsletter")
	g.POST("/subscribe", h.Subscribe)
	g.POST("/unsubscribe", h.Unsubscribe)

	a := g.Group("", admin...)
	a.GET("", h.List)
	a.DELETE("/:id", h.Delete)
}
