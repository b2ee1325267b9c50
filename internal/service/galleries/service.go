// Package galleries manages gallery profiles and their artwork listings.
// Gallery accounts manage their own galleries; admins manage all of them.
package galleries

import (
	"context"
	"fmt"
	"strings"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/galleries"
	"artmarket-admin/internal/domain/slug"
	"artmarket-admin/internal/domain/users"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"

	"go.uber.org/zap"
)

type ListQuery struct {
	Search  string
	Status  string
	OwnerID *uint
	Limit   int
	Offset  int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Gallery, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Gallery, error)
	Create(ctx context.Context, g *domain.Gallery) error
	Save(ctx context.Context, g *domain.Gallery) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Gallery, int64, error)
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
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	Website     string              `json:"website"`
	ImageURL    string              `json:"imageUrl"`
	Status      string              `json:"status" validate:"omitempty,oneof=active inactive"`
	OwnerID     *uint               `json:"ownerId"`
	Artworks    []domain.ArtworkRef `json:"artworks"`
}

// BulkResult reports the outcome of one id in a bulk delete.
type BulkResult struct {
	ID      uint   `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

func (in *Input) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := validation.Struct(in); err != nil {
		return err
	}
	return ValidateArtworks(in.Artworks)
}

// ValidateArtworks requires an id and a title on every listed artwork.
func ValidateArtworks(refs []domain.ArtworkRef) error {
	for i := range refs {
		refs[i].ID = strings.TrimSpace(refs[i].ID)
		refs[i].Title = strings.TrimSpace(refs[i].Title)
		if refs[i].ID == "" {
			return apperr.MissingField(fmt.Sprintf("artworks[%d].id", i))
		}
		if refs[i].Title == "" {
			return apperr.MissingField(fmt.Sprintf("artworks[%d].title", i))
		}
	}
	return nil
}

func (s *Service) uniqueSlug(ctx context.Context, name string, self uint) (string, error) {
	return slug.Unique("gallery", func(candidate string) (bool, error) {
		g, err := s.repo.FindBySlug(ctx, candidate)
		if err != nil {
			return false, err
		}
		return g != nil && g.ID != self, nil
	}, name)
}

func (s *Service) Create(ctx context.Context, in Input, actor users.Actor) (*domain.Gallery, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	owner := in.OwnerID
	if !actor.IsAdmin() {
		id := actor.ID
		owner = &id
	}

	sl, err := s.uniqueSlug(ctx, in.Name, 0)
	if err != nil {
		return nil, apperr.Internal("Failed to generate slug", err)
	}

	g := &domain.Gallery{
		OwnerID:     owner,
		Name:        in.Name,
		Slug:        sl,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Website:     strings.TrimSpace(in.Website),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Artworks:    in.Artworks,
		Status:      domain.StatusActive,
	}
	if in.Status != "" {
		g.Status = in.Status
	}
	if g.Artworks == nil {
		g.Artworks = []domain.ArtworkRef{}
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, apperr.Internal("Failed to create gallery", err)
	}
	return g, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Gallery, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load gallery", err)
	}
	if g == nil {
		return nil, apperr.NotFound("Gallery not found")
	}
	return g, nil
}

// GetPublic resolves an active gallery by slug.
func (s *Service) GetPublic(ctx context.Context, sl string) (*domain.Gallery, error) {
	g, err := s.repo.FindBySlug(ctx, strings.TrimSpace(sl))
	if err != nil {
		return nil, apperr.Internal("Failed to load gallery", err)
	}
	if g == nil || g.Status != domain.StatusActive {
		return nil, apperr.NotFound("Gallery not found")
	}
	return g, nil
}

func (s *Service) owned(ctx context.Context, id uint, actor users.Actor) (*domain.Gallery, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(g.OwnerID) {
		return nil, apperr.Forbidden("You do not manage this gallery")
	}
	return g, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input, actor users.Actor) (*domain.Gallery, error) {
	g, err := s.owned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	if in.Name != g.Name {
		if g.Slug, err = s.uniqueSlug(ctx, in.Name, g.ID); err != nil {
			return nil, apperr.Internal("Failed to generate slug", err)
		}
	}
	g.Name = in.Name
	g.Description = strings.TrimSpace(in.Description)
	g.Location = strings.TrimSpace(in.Location)
	g.Website = strings.TrimSpace(in.Website)
	g.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Status != "" {
		g.Status = in.Status
	}
	if in.Artworks != nil {
		g.Artworks = in.Artworks
	}
	if actor.IsAdmin() && in.OwnerID != nil {
		g.OwnerID = in.OwnerID
	}

	if err := s.repo.Save(ctx, g); err != nil {
		return nil, apperr.Internal("Failed to update gallery", err)
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id uint, actor users.Actor) error {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete gallery", err)
	}
	return nil
}

// BulkDelete attempts every id and reports each outcome. It only fails as a
// whole when ids is empty.
func (s *Service) BulkDelete(ctx context.Context, ids []uint, actor users.Actor) ([]BulkResult, error) {
	if len(ids) == 0 {
		return nil, apperr.MissingField("ids")
	}

	results := make([]BulkResult, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		r := BulkResult{ID: id}
		if err := s.Delete(ctx, id, actor); err != nil {
			r.Error = apperr.As(err).Message
			s.log.Debug("bulk gallery delete skipped", zap.Uint("gallery_id", id), zap.Error(err))
		} else {
			r.Deleted = true
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Gallery, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list galleries", err)
	}
	return items, total, nil
}
