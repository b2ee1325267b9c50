// Package banners manages sponsor banners and resolves which ones are live
// for a placement.
package banners

import (
	"context"
	"sort"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/banners"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"
)

const DefaultPlacement = "home"

type ListQuery struct {
	Placement  string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.SponsorBanner, error)
	Create(ctx context.Context, b *domain.SponsorBanner) error
	Save(ctx context.Context, b *domain.SponsorBanner) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.SponsorBanner, int64, error)
	// ActiveAt returns active banners for placement whose window contains now.
	ActiveAt(ctx context.Context, placement string, now time.Time) ([]domain.SponsorBanner, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type Input struct {
	Title     string     `json:"title" validate:"required"`
	Sponsor   string     `json:"sponsor"`
	ImageURL  string     `json:"imageUrl" validate:"required"`
	LinkURL   string     `json:"linkUrl"`
	Placement string     `json:"placement"`
	SortOrder int        `json:"sortOrder"`
	IsActive  *bool      `json:"isActive"`
	StartsAt  *time.Time `json:"startsAt"`
	EndsAt    *time.Time `json:"endsAt"`
}

func (in *Input) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Placement = strings.ToLower(strings.TrimSpace(in.Placement))
	if in.Placement == "" {
		in.Placement = DefaultPlacement
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.StartsAt != nil && in.EndsAt != nil && !in.EndsAt.After(*in.StartsAt) {
		return &apperr.Error{Kind: apperr.KindValidation, Field: "endsAt", Message: "endsAt must be after startsAt"}
	}
	return nil
}

func (in *Input) apply(b *domain.SponsorBanner) {
	b.Title = in.Title
	b.Sponsor = strings.TrimSpace(in.Sponsor)
	b.ImageURL = in.ImageURL
	b.LinkURL = strings.TrimSpace(in.LinkURL)
	b.Placement = in.Placement
	b.SortOrder = in.SortOrder
	b.StartsAt = in.StartsAt
	b.EndsAt = in.EndsAt
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.SponsorBanner, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	b := &domain.SponsorBanner{IsActive: true}
	in.apply(b)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to create sponsor banner", err)
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.SponsorBanner, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load sponsor banner", err)
	}
	if b == nil {
		return nil, apperr.NotFound("Sponsor banner not found")
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.SponsorBanner, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	in.apply(b)
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to update sponsor banner", err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete sponsor banner", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.SponsorBanner, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	q.Placement = strings.ToLower(strings.TrimSpace(q.Placement))
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list sponsor banners", err)
	}
	return items, total, nil
}

// Live returns the banners to show for placement right now, ordered by
// sort order.
func (s *Service) Live(ctx context.Context, placement string) ([]domain.SponsorBanner, error) {
	placement = strings.ToLower(strings.TrimSpace(placement))
	if placement == "" {
		placement = DefaultPlacement
	}
	now := s.now()

	items, err := s.repo.ActiveAt(ctx, placement, now)
	if err != nil {
		return nil, apperr.Internal("Failed to load sponsor banners", err)
	}

	live := items[:0]
	for i := range items {
		if items[i].LiveAt(now) {
			live = append(live, items[i])
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].SortOrder < live[j].SortOrder })
	return live, nil
}
