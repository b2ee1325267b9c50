// Package auctions serves auction CRUD, status changes and spreadsheet
// import/export.
package auctions

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"artmarket-admin/internal/api/params"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/app/http/middleware"
	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/auctions"
	svc "artmarket-admin/internal/service/auctions"
	"artmarket-admin/internal/service/listing"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Service interface {
	Create(ctx context.Context, in svc.Input, actor *uint) (*domain.Auction, error)
	Get(ctx context.Context, id uint) (*domain.Auction, error)
	Update(ctx context.Context, id uint, in svc.Input) (*domain.Auction, error)
	ChangeStatus(ctx context.Context, id uint, status string) (*domain.Auction, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q svc.ListQuery) ([]domain.Auction, int64, error)
	BulkCreate(ctx context.Context, rows []svc.BulkRow, actor *uint) (*svc.BulkReport, error)
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
	a, err := h.svc.Create(c.Request.Context(), in, middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "Auction created successfully", a)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Auction fetched successfully", a)
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
	a, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Auction updated successfully", a)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	a, err := h.svc.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Auction status updated successfully", a)
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
	respond.OK(c, "Auction deleted successfully", nil)
}

func (h *Handler) query(c *gin.Context) svc.ListQuery {
	limit, offset := params.Page(c)
	return svc.ListQuery{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	}
}

func (h *Handler) List(c *gin.Context) {
	items, total, err := h.svc.List(c.Request.Context(), h.query(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.List(c, "Auctions fetched successfully", items, total)
}

// BulkUpload takes either a multipart "file" (.xlsx) or a JSON array of
// auctions. Every row is attempted.
func (h *Handler) BulkUpload(c *gin.Context) {
	var rows []svc.BulkRow
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, apperr.MissingField("file"))
			return
		}
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
			respond.Error(c, &apperr.Error{Kind: apperr.KindValidation, Field: "file", Message: "Only .xlsx files are supported"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			respond.Error(c, apperr.Internal("Failed to read upload", err))
			return
		}
		defer f.Close()
		if rows, err = svc.ParseSheet(f); err != nil {
			respond.Error(c, err)
			return
		}
	} else {
		var items []svc.Input
		if err := c.ShouldBindJSON(&items); err != nil {
			respond.BadRequest(c, err)
			return
		}
		rows = svc.RowsFromJSON(items)
	}

	report, err := h.svc.BulkCreate(c.Request.Context(), rows, middleware.Actor(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, fmt.Sprintf("Bulk upload processed: %d created, %d failed", report.Created, report.Failed), report)
}

// Export streams the filtered auctions as a spreadsheet.
func (h *Handler) Export(c *gin.Context) {
	q := h.query(c)
	q.Limit, q.Offset = listing.MaxLimit, 0

	var all []domain.Auction
	for {
		items, total, err := h.svc.List(c.Request.Context(), q)
		if err != nil {
			respond.Error(c, err)
			return
		}
		all = append(all, items...)
		q.Offset += len(items)
		if len(items) == 0 || int64(q.Offset) >= total {
			break
		}
	}

	buf, err := svc.Export(all)
	if err != nil {
		respond.Error(c, err)
		return
	}
	name := "auctions-" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	g := rg.Group("/auction", admin...)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.POST("/bulk", h.BulkUpload)
	g.GET("/export", h.Export)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/status", h.ChangeStatus)
	g.DELETE("/:id", h.Delete)
}
