package newsletters

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/newsletters"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"
)

type ListQuery struct {
	Search     string
	Subscribed *bool
	Limit      int
	Offset     int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Subscriber, error)
	FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	Create(ctx context.Context, s *domain.Subscriber) error
	Save(ctx context.Context, s *domain.Subscriber) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Subscriber, int64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type SubscribeInput struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Subscribe adds the address, or re-subscribes it after an earlier
// unsubscribe.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*domain.Subscriber, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Internal("Failed to check subscription", err)
	}
	if existing != nil {
		if existing.IsSubscribed {
			return nil, &apperr.Error{Kind: apperr.KindConflict, Field: "email", Message: "Email is already subscribed"}
		}
		existing.IsSubscribed = true
		existing.UnsubscribedAt = nil
		if n := strings.TrimSpace(in.Name); n != "" {
			existing.Name = n
		}
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, apperr.Internal("Failed to subscribe", err)
		}
		return existing, nil
	}

	sub := &domain.Subscriber{
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		Source:       strings.TrimSpace(in.Source),
		IsSubscribed: true,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, apperr.Internal("Failed to subscribe", err)
	}
	return sub, nil
}

func (s *Service) Unsubscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.MissingField("email")
	}

	sub, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Failed to load subscription", err)
	}
	if sub == nil {
		return nil, apperr.NotFound("Subscription not found")
	}
	if !sub.IsSubscribed {
		return sub, nil
	}

	now := s.now()
	sub.IsSubscribed = false
	sub.UnsubscribedAt = &now
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, apperr.Internal("Failed to unsubscribe", err)
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Subscriber, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list subscribers", err)
	}
	return items, total, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("Failed to load subscriber", err)
	}
	if sub == nil {
		return apperr.NotFound("Subscriber not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete subscriber", err)
	}
	return nil
}
