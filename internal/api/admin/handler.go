// Package admin serves the admin dashboard overview.
package admin

import (
	"context"
	"time"

	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/apperr"
	"artmarket-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

// RecentWindow bounds the "recent" revenue figure.
const RecentWindow = 30 * 24 * time.Hour

type Stats interface {
	Dashboard(ctx context.Context, since time.Time) (*repository.DashboardStats, error)
}

type Handler struct {
	stats Stats
	now   func() time.Time
}

func NewHandler(stats Stats) *Handler {
	return &Handler{stats: stats, now: time.Now}
}

func (h *Handler) Dashboard(c *gin.Context) {
	s, err := h.stats.Dashboard(c.Request.Context(), h.now().Add(-RecentWindow))
	if err != nil {
		respond.Error(c, apperr.Internal("Failed to load dashboard", err))
		return
	}
	respond.OK(c, "Dashboard fetched successfully", s)
}

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	rg.Group("/admin", admin...).GET("/dashboard", h.Dashboard)
}
