// Package partnerships handles partner applications. Approving one
// provisions an account for the partner.
package partnerships

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/partnerships"
	userdomain "artmarket-admin/internal/domain/users"
	"artmarket-admin/internal/infra/mailer"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/service/users"
	"artmarket-admin/internal/validation"

	"go.uber.org/zap"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ListQuery struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, p *domain.Partnership) error
	FindByID(ctx context.Context, id uint) (*domain.Partnership, error)
	Save(ctx context.Context, p *domain.Partnership) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Partnership, int64, error)
}

type Provisioner interface {
	Provision(ctx context.Context, in users.ProvisionInput) (*userdomain.User, string, error)
}

type Mailer interface {
	SendPartnershipApproved(ctx context.Context, p mailer.PartnershipMail) error
	SendPartnershipRejected(ctx context.Context, p mailer.PartnershipMail) error
}

type Service struct {
	tx    Transactor
	repo  Repository
	users Provisioner
	mail  Mailer
	log   *zap.Logger
	now   func() time.Time
}

func NewService(tx Transactor, repo Repository, users Provisioner, mail Mailer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{tx: tx, repo: repo, users: users, mail: mail, log: log, now: time.Now}
}

type ApplyInput struct {
	OrganizationName string `json:"organizationName" validate:"required"`
	ContactName      string `json:"contactName" validate:"required"`
	ContactEmail     string `json:"contactEmail" validate:"required,email"`
	Phone            string `json:"phone"`
	Website          string `json:"website"`
	Type             string `json:"type" validate:"required,oneof=gallery museum artist sponsor"`
	Message          string `json:"message"`
}

func (s *Service) Apply(ctx context.Context, in ApplyInput) (*domain.Partnership, error) {
	in.OrganizationName = strings.TrimSpace(in.OrganizationName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactEmail = strings.ToLower(strings.TrimSpace(in.ContactEmail))
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p := &domain.Partnership{
		OrganizationName: in.OrganizationName,
		ContactName:      in.ContactName,
		ContactEmail:     in.ContactEmail,
		Phone:            strings.TrimSpace(in.Phone),
		Website:          strings.TrimSpace(in.Website),
		Type:             in.Type,
		Message:          strings.TrimSpace(in.Message),
		Status:           domain.StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to submit partnership request", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Partnership, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load partnership", err)
	}
	if p == nil {
		return nil, apperr.NotFound("Partnership not found")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Partnership, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list partnerships", err)
	}
	return items, total, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete partnership", err)
	}
	return nil
}

func (s *Service) review(p *domain.Partnership, status, note string, actor *uint) {
	now := s.now()
	p.Status = status
	p.ReviewNote = strings.TrimSpace(note)
	p.ReviewedBy = actor
	p.ReviewedAt = &now
}

// Approve provisions the partner account and approves the request in one
// transaction, then emails the credentials.
func (s *Service) Approve(ctx context.Context, id uint, note string, actor *uint) (*domain.Partnership, error) {
	var (
		p     *domain.Partnership
		plain string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.Get(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.StatusPending {
			return apperr.Validation("Partnership has already been " + p.Status)
		}

		first, last := splitName(p.ContactName)
		u, pw, err := s.users.Provision(ctx, users.ProvisionInput{
			Name:     first,
			Lastname: last,
			Email:    p.ContactEmail,
			Tel:      p.Phone,
			Role:     domain.RoleFor(p.Type),
		})
		if err != nil {
			return err
		}
		plain = pw

		s.review(p, domain.StatusApproved, note, actor)
		p.UserID = &u.ID
		if err := s.repo.Save(ctx, p); err != nil {
			return apperr.Internal("Failed to approve partnership", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.mail.SendPartnershipApproved(ctx, mailer.PartnershipMail{
		To:           p.ContactEmail,
		ContactName:  p.ContactName,
		Organization: p.OrganizationName,
		Password:     plain,
	})
	if err != nil {
		s.log.Warn("partnership approval email failed", zap.Uint("partnership_id", p.ID), zap.Error(err))
	}
	return p, nil
}

func (s *Service) Reject(ctx context.Context, id uint, note string, actor *uint) (*domain.Partnership, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.StatusPending {
		return nil, apperr.Validation("Partnership has already been " + p.Status)
	}

	s.review(p, domain.StatusRejected, note, actor)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to reject partnership", err)
	}

	err = s.mail.SendPartnershipRejected(ctx, mailer.PartnershipMail{
		To:           p.ContactEmail,
		ContactName:  p.ContactName,
		Organization: p.OrganizationName,
		Note:         p.ReviewNote,
	})
	if err != nil {
		s.log.Warn("partnership rejection email failed", zap.Uint("partnership_id", p.ID), zap.Error(err))
	}
	return p, nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
