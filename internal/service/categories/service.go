package categories

import (
	"context"
	"strings"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/categories"
	"artmarket-admin/internal/domain/slug"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"
)

type ListQuery struct {
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Save(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Category, int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive"`
}

func (s *Service) uniqueSlug(ctx context.Context, name string, self uint) (string, error) {
	return slug.Unique("category", func(candidate string) (bool, error) {
		c, err := s.repo.FindBySlug(ctx, candidate)
		if err != nil {
			return false, err
		}
		return c != nil && c.ID != self, nil
	}, name)
}

func (s *Service) ensureNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return apperr.Internal("Failed to check category", err)
	}
	if existing != nil && existing.ID != self {
		return &apperr.Error{Kind: apperr.KindConflict, Field: "name", Message: "Category already exists"}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	sl, err := s.uniqueSlug(ctx, in.Name, 0)
	if err != nil {
		return nil, apperr.Internal("Failed to generate slug", err)
	}
	c := &domain.Category{
		Name:        in.Name,
		Slug:        sl,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperr.Internal("Failed to create category", err)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load category", err)
	}
	if c == nil {
		return nil, apperr.NotFound("Category not found")
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if !strings.EqualFold(in.Name, c.Name) {
		if err := s.ensureNameFree(ctx, in.Name, c.ID); err != nil {
			return nil, err
		}
		if c.Slug, err = s.uniqueSlug(ctx, in.Name, c.ID); err != nil {
			return nil, apperr.Internal("Failed to generate slug", err)
		}
	}
	c.Name = in.Name
	c.Description = strings.TrimSpace(in.Description)
	c.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, apperr.Internal("Failed to update category", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete category", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Category, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list categories", err)
	}
	return items, total, nil
}
