package routes

import (
	"net/http"

	adminapi "artmarket-admin/internal/api/admin"
	auctionsapi "artmarket-admin/internal/api/auctions"
	authapi "artmarket-admin/internal/api/auth"
	bannersapi "artmarket-admin/internal/api/banners"
	categoriesapi "artmarket-admin/internal/api/categories"
	galleriesapi "artmarket-admin/internal/api/galleries"
	museumsapi "artmarket-admin/internal/api/museums"
	newslettersapi "artmarket-admin/internal/api/newsletters"
	offersapi "artmarket-admin/internal/api/offers"
	partnershipsapi "artmarket-admin/internal/api/partnerships"
	pricingapi "artmarket-admin/internal/api/pricing"
	stripewebhooks "artmarket-admin/internal/api/stripewebhook"
	usersapi "artmarket-admin/internal/api/users"
	"artmarket-admin/internal/app/http/middleware"
	"artmarket-admin/internal/auth/token"
	"artmarket-admin/internal/domain/users"
	"artmarket-admin/internal/infra/metrics"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const BasePath = "/v1/api"

type Handlers struct {
	Auth         *authapi.Handler
	Users        *usersapi.Handler
	Admin        *adminapi.Handler
	Pricing      *pricingapi.Handler
	Categories   *categoriesapi.Handler
	Galleries    *galleriesapi.Handler
	Museums      *museumsapi.Handler
	Auctions     *auctionsapi.Handler
	Offers       *offersapi.Handler
	Partnerships *partnershipsapi.Handler
	Newsletters  *newslettersapi.Handler
	Banners      *bannersapi.Handler
	Webhook      *stripewebhooks.Handler
}

// RegisterRoutes mounts everything. The webhook sits outside the sanitised
// group because Stripe signs the raw body.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, iss *token.Issuer, h Handlers) {
	r.POST("/webhook", h.Webhook.StripeWebhook)
	r.GET("/metrics", metrics.Handler())
	r.GET("/health", health(db))

	api := r.Group(BasePath)
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	authed := middleware.AuthMiddleware(iss)
	admin := []gin.HandlerFunc{authed, middleware.RequireRole(users.RoleAdmin)}

	h.Auth.Routes(api, authed)
	h.Users.Register(api, admin...)
	h.Admin.Register(api, admin...)
	h.Pricing.Register(api, admin...)
	h.Categories.Register(api, admin...)
	h.Galleries.Register(api, authed, middleware.RequireRole(users.RoleAdmin, users.RoleGallery))
	h.Museums.Register(api, authed, middleware.RequireRole(users.RoleAdmin, users.RoleMuseum))
	h.Auctions.Register(api, admin...)
	h.Offers.Register(api, admin...)
	h.Partnerships.Register(api, admin...)
	h.Newsletters.Register(api, admin...)
	h.Banners.Register(api, admin...)
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
