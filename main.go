package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artmarket-admin/config"
	"artmarket-admin/database"
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
	routes "artmarket-admin/internal/app/http"
	"artmarket-admin/internal/app/http/middleware"
	"artmarket-admin/internal/auth/token"
	"artmarket-admin/internal/infra/cache"
	"artmarket-admin/internal/infra/events"
	"artmarket-admin/internal/infra/logger"
	"artmarket-admin/internal/infra/mailer"
	"artmarket-admin/internal/infra/metrics"
	"artmarket-admin/internal/infra/stripe"
	"artmarket-admin/internal/repository"
	"artmarket-admin/internal/service/auctions"
	"artmarket-admin/internal/service/banners"
	"artmarket-admin/internal/service/categories"
	"artmarket-admin/internal/service/galleries"
	"artmarket-admin/internal/service/museums"
	"artmarket-admin/internal/service/newsletters"
	"artmarket-admin/internal/service/offers"
	"artmarket-admin/internal/service/partnerships"
	"artmarket-admin/internal/service/pricing"
	"artmarket-admin/internal/service/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const adjustmentCacheTTL = 10 * time.Minute

func main() {
	cfg := config.LoadEnv()

	zl, err := logger.InitLogger(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "artmarket-admin",
		File:        cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer zl.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	// Prices go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.DBURL, zl)
	if err != nil {
		zl.Fatal("database init failed", zap.Error(err))
	}

	iss := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL())

	var sender mailer.Sender
	if cfg.MailEnabled() {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.ClientEmail,
			Password: cfg.ClientEmailPassword,
			Name:     cfg.SiteName,
		})
	} else {
		zl.Warn("SMTP not configured, emails will only be logged")
		sender = mailer.NewLogSender(zl)
	}
	mail := mailer.New(sender, cfg.SiteName, cfg.BaseURL)

	pricingDeps := pricing.Deps{
		Tx:          repository.NewTransactor(db),
		Pricings:    repository.NewPricingRepository(db),
		Adjustments: repository.NewAdjustmentRepository(db),
		Logger:      zl.Named("pricing"),
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			zl.Warn("redis unavailable, adjustment cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			pricingDeps.Cache = cache.NewAdjustmentCache(rc, adjustmentCacheTTL)
		}
	}
	if len(cfg.KafkaBrokers) > 0 {
		pub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaPricingTopic)
		defer pub.Close()
		pricingDeps.Events = pub
	}

	var checkout offers.Checkout
	if cfg.StripeEnabled() {
		checkout = stripe.NewCheckout(cfg.StripeSecretKey, cfg.StripeCurrency, cfg.BaseURL)
	}

	google, err := authapi.NewGoogle(ctx, cfg)
	if err != nil {
		zl.Warn("google sign-in disabled", zap.Error(err))
	}

	userSvc := users.NewService(repository.NewUserRepository(db), iss, mail, zl.Named("users"))
	offerSvc := offers.NewService(repository.NewOfferRepository(db), mail, checkout, cfg.StripeCurrency, zl.Named("offers"))

	h := routes.Handlers{
		Auth:       authapi.NewHandler(userSvc, google),
		Users:      usersapi.NewHandler(userSvc),
		Admin:      adminapi.NewHandler(repository.NewStatsRepository(db)),
		Pricing:    pricingapi.NewHandler(pricing.NewService(pricingDeps)),
		Categories: categoriesapi.NewHandler(categories.NewService(repository.NewCategoryRepository(db))),
		Galleries:  galleriesapi.NewHandler(galleries.NewService(repository.NewGalleryRepository(db), zl.Named("galleries"))),
		Museums:    museumsapi.NewHandler(museums.NewService(repository.NewMuseumRepository(db))),
		Auctions:   auctionsapi.NewHandler(auctions.NewService(repository.NewAuctionRepository(db), zl.Named("auctions"))),
		Offers:     offersapi.NewHandler(offerSvc),
		Partnerships: partnershipsapi.NewHandler(partnerships.NewService(
			repository.NewTransactor(db),
			repository.NewPartnershipRepository(db),
			userSvc, mail, zl.Named("partnerships"),
		)),
		Newsletters: newslettersapi.NewHandler(newsletters.NewService(repository.NewSubscriberRepository(db))),
		Banners:     bannersapi.NewHandler(banners.NewService(repository.NewBannerRepository(db))),
		Webhook:     stripewebhooks.NewHandler(cfg.StripeWebhookSecret, offerSvc),
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logger.Middleware(),
		metrics.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	routes.RegisterRoutes(r, db, iss, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
