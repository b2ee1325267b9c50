package repository

import (
	"context"
	"errors"
	"strings"

	domain "artmarket-admin/internal/domain/users"
	svc "artmarket-admin/internal/service/users"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.DB).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

func (r *UserRepository) FindByGoogleSub(ctx context.Context, sub string) (*domain.User, error) {
	return r.first(ctx, "google_sub = ?", sub)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return conn(ctx, r.DB).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	return conn(ctx, r.DB).Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.DB).Delete(&domain.User{}, id).Error
}

func (r *UserRepository) CountActiveByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := conn(ctx, r.DB).Model(&domain.User{}).Where("role = ? AND is_active = ?", role, true).Count(&n).Error
	return n, err
}

func (r *UserRepository) List(ctx context.Context, q svc.ListQuery) ([]domain.User, int64, error) {
	db := conn(ctx, r.DB).Model(&domain.User{})
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ? OR LOWER(lastname) LIKE ?", like, like, like)
	}
	if q.Role != "" {
		db = db.Where("role = ?", strings.ToUpper(q.Role))
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []domain.User
	if err := db.Order("created_at DESC").Limit(q.Limit).Offset(q.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
