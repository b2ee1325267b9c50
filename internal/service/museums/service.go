// Package museums manages museum profiles, their events and exhibited
// artworks.
package museums

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	"artmarket-admin/internal/domain/galleries"
	domain "artmarket-admin/internal/domain/museums"
	"artmarket-admin/internal/domain/slug"
	"artmarket-admin/internal/domain/users"
	gallerysvc "artmarket-admin/internal/service/galleries"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"

	"github.com/google/uuid"
)

type ListQuery struct {
	Search     string
	ActiveOnly bool
	OwnerID    *uint
	Limit      int
	Offset     int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Museum, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Museum, error)
	Create(ctx context.Context, m *domain.Museum) error
	Save(ctx context.Context, m *domain.Museum) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Museum, int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Location    string                 `json:"location"`
	Website     string                 `json:"website"`
	ImageURL    string                 `json:"imageUrl"`
	IsActive    *bool                  `json:"isActive"`
	OwnerID     *uint                  `json:"ownerId"`
	Artworks    []galleries.ArtworkRef `json:"artworks"`
	Events      []EventInput           `json:"events"`
}

type EventInput struct {
	Title       string     `json:"title" validate:"required"`
	Date        *time.Time `json:"date" validate:"required"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
}

func (e EventInput) event() (domain.Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if err := validation.Struct(e); err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		ID:          uuid.NewString(),
		Title:       e.Title,
		Date:        e.Date.UTC(),
		Description: strings.TrimSpace(e.Description),
		ImageURL:    strings.TrimSpace(e.ImageURL),
	}, nil
}

func (in *Input) normalize() ([]domain.Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := gallerysvc.ValidateArtworks(in.Artworks); err != nil {
		return nil, err
	}
	if in.Events == nil {
		return nil, nil
	}
	events := make([]domain.Event, 0, len(in.Events))
	for _, e := range in.Events {
		ev, err := e.event()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *Service) uniqueSlug(ctx context.Context, name string, self uint) (string, error) {
	return slug.Unique("museum", func(candidate string) (bool, error) {
		m, err := s.repo.FindBySlug(ctx, candidate)
		if err != nil {
			return false, err
		}
		return m != nil && m.ID != self, nil
	}, name)
}

func (s *Service) Create(ctx context.Context, in Input, actor users.Actor) (*domain.Museum, error) {
	events, err := in.normalize()
	if err != nil {
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

	m := &domain.Museum{
		OwnerID:     owner,
		Name:        in.Name,
		Slug:        sl,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Website:     strings.TrimSpace(in.Website),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Events:      events,
		Artworks:    in.Artworks,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if m.Events == nil {
		m.Events = []domain.Event{}
	}
	if m.Artworks == nil {
		m.Artworks = []galleries.ArtworkRef{}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperr.Internal("Failed to create museum", err)
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Museum, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load museum", err)
	}
	if m == nil {
		return nil, apperr.NotFound("Museum not found")
	}
	return m, nil
}

// GetPublic resolves an active museum by slug.
func (s *Service) GetPublic(ctx context.Context, sl string) (*domain.Museum, error) {
	m, err := s.repo.FindBySlug(ctx, strings.TrimSpace(sl))
	if err != nil {
		return nil, apperr.Internal("Failed to load museum", err)
	}
	if m == nil || !m.IsActive {
		return nil, apperr.NotFound("Museum not found")
	}
	return m, nil
}

func (s *Service) owned(ctx context.Context, id uint, actor users.Actor) (*domain.Museum, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(m.OwnerID) {
		return nil, apperr.Forbidden("You do not manage this museum")
	}
	return m, nil
}

func (s *Service) save(ctx context.Context, m *domain.Museum) (*domain.Museum, error) {
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, apperr.Internal("Failed to update museum", err)
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input, actor users.Actor) (*domain.Museum, error) {
	m, err := s.owned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	events, err := in.normalize()
	if err != nil {
		return nil, err
	}

	if in.Name != m.Name {
		if m.Slug, err = s.uniqueSlug(ctx, in.Name, m.ID); err != nil {
			return nil, apperr.Internal("Failed to generate slug", err)
		}
	}
	m.Name = in.Name
	m.Description = strings.TrimSpace(in.Description)
	m.Location = strings.TrimSpace(in.Location)
	m.Website = strings.TrimSpace(in.Website)
	m.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if in.Artworks != nil {
		m.Artworks = in.Artworks
	}
	if events != nil {
		m.Events = events
	}
	if actor.IsAdmin() && in.OwnerID != nil {
		m.OwnerID = in.OwnerID
	}
	return s.save(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uint, actor users.Actor) error {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete museum", err)
	}
	return nil
}

// AddEvent appends an event and returns the updated museum.
func (s *Service) AddEvent(ctx context.Context, id uint, in EventInput, actor users.Actor) (*domain.Museum, error) {
	m, err := s.owned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	ev, err := in.event()
	if err != nil {
		return nil, err
	}
	m.Events = append(m.Events, ev)
	return s.save(ctx, m)
}

func (s *Service) RemoveEvent(ctx context.Context, id uint, eventID string, actor users.Actor) (*domain.Museum, error) {
	m, err := s.owned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.Event, 0, len(m.Events))
	for _, e := range m.Events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(m.Events) {
		return nil, apperr.NotFound("Event not found")
	}
	m.Events = kept
	return s.save(ctx, m)
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Museum, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list museums", err)
	}
	return items, total, nil
}
