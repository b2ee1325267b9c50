// Package auctions manages auction listings, their status lifecycle and bulk
// imports.
package auctions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/auctions"
	"artmarket-admin/internal/domain/slug"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ListQuery struct {
	Search   string
	Status   string
	Category string
	Limit    int
	Offset   int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Auction, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Auction, error)
	Create(ctx context.Context, a *domain.Auction) error
	Save(ctx context.Context, a *domain.Auction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Auction, int64, error)
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

type Input struct {
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description"`
	ArtworkID     string     `json:"artworkId"`
	ArtworkTitle  string     `json:"artworkTitle"`
	ArtistName    string     `json:"artistName"`
	Category      string     `json:"category"`
	ImageURL      string     `json:"imageUrl"`
	StartingPrice *float64   `json:"startingPrice" validate:"required"`
	ReservePrice  *float64   `json:"reservePrice"`
	StartTime     *time.Time `json:"startTime" validate:"required"`
	EndTime       *time.Time `json:"endTime" validate:"required"`
	Status        string     `json:"status"`
}

func (in *Input) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := validation.Struct(in); err != nil {
		return err
	}
	if *in.StartingPrice <= 0 {
		return &apperr.Error{Kind: apperr.KindValidation, Field: "startingPrice", Message: "startingPrice must be greater than 0"}
	}
	if in.ReservePrice != nil && *in.ReservePrice < *in.StartingPrice {
		return &apperr.Error{Kind: apperr.KindValidation, Field: "reservePrice", Message: "reservePrice must not be below startingPrice"}
	}
	if !in.EndTime.After(*in.StartTime) {
		return &apperr.Error{Kind: apperr.KindValidation, Field: "endTime", Message: "endTime must be after startTime"}
	}
	if in.Status != "" && !domain.Status(in.Status).Valid() {
		return &apperr.Error{Kind: apperr.KindValidation, Field: "status", Message: "Invalid auction status: " + in.Status}
	}
	return nil
}

func (in *Input) apply(a *domain.Auction) {
	a.Title = in.Title
	a.Description = strings.TrimSpace(in.Description)
	a.ArtworkID = strings.TrimSpace(in.ArtworkID)
	a.ArtworkTitle = strings.TrimSpace(in.ArtworkTitle)
	a.ArtistName = strings.TrimSpace(in.ArtistName)
	a.Category = strings.TrimSpace(in.Category)
	a.ImageURL = strings.TrimSpace(in.ImageURL)
	a.StartingPrice = decimal.NewFromFloat(*in.StartingPrice).Round(2)
	a.ReservePrice = decimal.NullDecimal{}
	if in.ReservePrice != nil {
		a.ReservePrice = decimal.NewNullDecimal(decimal.NewFromFloat(*in.ReservePrice).Round(2))
	}
	a.StartTime = in.StartTime.UTC()
	a.EndTime = in.EndTime.UTC()
}

func (s *Service) uniqueSlug(ctx context.Context, title string, self uint) (string, error) {
	return slug.Unique("auction", func(candidate string) (bool, error) {
		a, err := s.repo.FindBySlug(ctx, candidate)
		if err != nil {
			return false, err
		}
		return a != nil && a.ID != self, nil
	}, title)
}

func (s *Service) Create(ctx context.Context, in Input, actor *uint) (*domain.Auction, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	sl, err := s.uniqueSlug(ctx, in.Title, 0)
	if err != nil {
		return nil, apperr.Internal("Failed to generate slug", err)
	}

	a := &domain.Auction{Slug: sl, Status: domain.StatusPending, CreatedBy: actor}
	in.apply(a)
	if in.Status != "" {
		a.Status = domain.Status(in.Status)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperr.Internal("Failed to create auction", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Auction, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load auction", err)
	}
	if a == nil {
		return nil, apperr.NotFound("Auction not found")
	}
	return a, nil
}

func transitionError(from, to domain.Status) error {
	return &apperr.Error{
		Kind:    apperr.KindValidation,
		Field:   "status",
		Message: fmt.Sprintf("Cannot change auction status from %s to %s", from, to),
	}
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Auction, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	if next := domain.Status(in.Status); in.Status != "" && next != a.Status {
		if !a.Status.CanTransition(next) {
			return nil, transitionError(a.Status, next)
		}
		a.Status = next
	}
	if in.Title != a.Title {
		if a.Slug, err = s.uniqueSlug(ctx, in.Title, a.ID); err != nil {
			return nil, apperr.Internal("Failed to generate slug", err)
		}
	}
	in.apply(a)

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, apperr.Internal("Failed to update auction", err)
	}
	return a, nil
}

// ChangeStatus moves an auction along its lifecycle. Setting the current
// status again is a no-op.
func (s *Service) ChangeStatus(ctx context.Context, id uint, status string) (*domain.Auction, error) {
	next := domain.Status(strings.ToLower(strings.TrimSpace(status)))
	if next == "" {
		return nil, apperr.MissingField("status")
	}
	if !next.Valid() {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Field: "status", Message: "Invalid auction status: " + string(next)}
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == next {
		return a, nil
	}
	if !a.Status.CanTransition(next) {
		return nil, transitionError(a.Status, next)
	}

	a.Status = next
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, apperr.Internal("Failed to update auction status", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete auction", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Auction, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list auctions", err)
	}
	return items, total, nil
}
