package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// crud carries the finders and writes shared by the simple resource
// repositories. T is a gorm model with a uint primary key.
type crud[T any] struct {
	DB *gorm.DB
}

func (r crud[T]) first(ctx context.Context, query string, args ...any) (*T, error) {
	var v T
	err := conn(ctx, r.DB).Where(query, args...).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r crud[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	return r.first(ctx, "id = ?", id)
}

func (r crud[T]) Create(ctx context.Context, v *T) error {
	return conn(ctx, r.DB).Create(v).Error
}

func (r crud[T]) Save(ctx context.Context, v *T) error {
	return conn(ctx, r.DB).Save(v).Error
}

func (r crud[T]) Delete(ctx context.Context, id uint) error {
	var zero T
	return conn(ctx, r.DB).Delete(&zero, id).Error
}

func (r crud[T]) model(ctx context.Context) *gorm.DB {
	var zero T
	return conn(ctx, r.DB).Model(&zero)
}

// page counts db and returns one ordered page of it.
func (r crud[T]) page(db *gorm.DB, order string, limit, offset int) ([]T, int64, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []T
	if err := db.Order(order).Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// search adds a case-insensitive LIKE over cols.
func search(db *gorm.DB, term string, cols ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return db
	}
	like := "%" + strings.ToLower(term) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = like
	}
	return db.Where(strings.Join(parts, " OR "), args...)
}
