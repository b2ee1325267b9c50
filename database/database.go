package database

import (
	"fmt"
	"time"

	"artmarket-admin/internal/domain/auctions"
	"artmarket-admin/internal/domain/banners"
	"artmarket-admin/internal/domain/categories"
	"artmarket-admin/internal/domain/galleries"
	"artmarket-admin/internal/domain/museums"
	"artmarket-admin/internal/domain/newsletters"
	"artmarket-admin/internal/domain/offers"
	"artmarket-admin/internal/domain/partnerships"
	"artmarket-admin/internal/domain/pricing"
	"artmarket-admin/internal/domain/users"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB connects, enables pgcrypto for uuid defaults and migrates every
// model.
func InitDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&users.User{},

		&pricing.ArtworkPricing{},
		&pricing.GlobalPricingAdjustment{},

		&categories.Category{},
		&galleries.Gallery{},
		&museums.Museum{},
		&auctions.Auction{},

		&offers.Offer{},
		&partnerships.Partnership{},
		&newsletters.Subscriber{},
		&banners.SponsorBanner{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	// At most one active global adjustment.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_global_adjustment_single_active
		ON global_pricing_adjustments (is_active) WHERE is_active`).Error; err != nil {
		return nil, fmt.Errorf("failed to create active adjustment index: %w", err)
	}

	log.Info("connected and migrated")
	return db, nil
}
