// Package users holds account flows: registration, login, Google sign-in
// and admin user management.
package users

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	"artmarket-admin/internal/auth/token"
	domain "artmarket-admin/internal/domain/users"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ListQuery struct {
	Search string
	Role   string
	Limit  int
	Offset int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByGoogleSub(ctx context.Context, sub string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Save(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint) error
	CountActiveByRole(ctx context.Context, role string) (int64, error)
	List(ctx context.Context, q ListQuery) ([]domain.User, int64, error)
}

type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

type Service struct {
	repo   Repository
	tokens *token.Issuer
	mail   Mailer
	log    *zap.Logger
	cost   int
	now    func() time.Time
}

func NewService(repo Repository, tokens *token.Issuer, mail Mailer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, tokens: tokens, mail: mail, log: log, cost: bcrypt.DefaultCost, now: time.Now}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperr.Internal("Failed to hash password", err)
	}
	return string(b), nil
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Lastname string `json:"lastname"`
	Tel      string `json:"tel"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !isPasswordStrong(in.Password) {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Field: "password",
			Message: "Password must be at least 8 characters long and contain both letters and numbers"}
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Internal("Failed to look up user", err)
	}
	if existing != nil {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Field: "email", Message: "User already exists"}
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         in.Name,
		Lastname:     strings.TrimSpace(in.Lastname),
		Tel:          strings.TrimSpace(in.Tel),
		Email:        in.Email,
		Password:     &hashed,
		AuthProvider: domain.ProviderLocal,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}

	s.welcome(ctx, u)
	return s.session(ctx, u)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Internal("Failed to look up user", err)
	}
	if u == nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !u.IsActive {
		return nil, apperr.Forbidden("Account is disabled")
	}
	if !u.HasPassword() {
		return nil, apperr.Unauthorized("This account uses Google sign-in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return s.session(ctx, u)
}

type GoogleProfile struct {
	Sub        string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
}

// GoogleLogin finds the account by Google subject, then by email (linking
// the subject), and creates a USER account otherwise.
func (s *Service) GoogleLogin(ctx context.Context, p GoogleProfile) (*AuthResult, error) {
	p.Email = normalizeEmail(p.Email)
	if p.Sub == "" || p.Email == "" {
		return nil, apperr.Unauthorized("Google account is missing required claims")
	}

	u, err := s.repo.FindByGoogleSub(ctx, p.Sub)
	if err != nil {
		return nil, apperr.Internal("Failed to look up user", err)
	}
	if u == nil {
		u, err = s.repo.FindByEmail(ctx, p.Email)
		if err != nil {
			return nil, apperr.Internal("Failed to look up user", err)
		}
		if u != nil {
			sub := p.Sub
			u.GoogleSub = &sub
			if !u.HasPassword() {
				u.AuthProvider = domain.ProviderGoogle
			}
			if err := s.repo.Save(ctx, u); err != nil {
				return nil, apperr.Internal("Failed to link Google account", err)
			}
		}
	}

	if u == nil {
		sub := p.Sub
		u = &domain.User{
			Name:         firstNonEmpty(p.GivenName, p.Name, strings.Split(p.Email, "@")[0]),
			Lastname:     p.FamilyName,
			Email:        p.Email,
			AuthProvider: domain.ProviderGoogle,
			GoogleSub:    &sub,
			Role:         domain.RoleUser,
			IsActive:     true,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, apperr.Internal("Failed to create user", err)
		}
		s.welcome(ctx, u)
	}

	if !u.IsActive {
		return nil, apperr.Forbidden("Account is disabled")
	}
	return s.session(ctx, u)
}

func (s *Service) session(ctx context.Context, u *domain.User) (*AuthResult, error) {
	tok, err := s.tokens.Issue(token.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return nil, apperr.Internal("Could not create token", err)
	}

	now := s.now()
	u.LastLoginAt = &now
	if err := s.repo.Save(ctx, u); err != nil {
		s.log.Warn("failed to record last login", zap.Uint("user_id", u.ID), zap.Error(err))
	}
	return &AuthResult{Token: tok, User: u}, nil
}

func (s *Service) welcome(ctx context.Context, u *domain.User) {
	if s.mail == nil {
		return
	}
	if err := s.mail.SendWelcome(ctx, u.Email, u.Name); err != nil {
		s.log.Warn("welcome email failed", zap.String("email", u.Email), zap.Error(err))
	}
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (s *Service) ChangePassword(ctx context.Context, id uint, in ChangePasswordInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if !isPasswordStrong(in.NewPassword) {
		return &apperr.Error{Kind: apperr.KindValidation, Field: "newPassword",
			Message: "New password must be at least 8 characters with letters and numbers"}
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !u.HasPassword() {
		return apperr.Validation("This account does not have a password. Sign in with Google.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(in.OldPassword)); err != nil {
		return apperr.Unauthorized("Old password is incorrect")
	}

	hashed, err := s.hash(in.NewPassword)
	if err != nil {
		return err
	}
	u.Password = &hashed
	if err := s.repo.Save(ctx, u); err != nil {
		return apperr.Internal("Failed to update password", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.User, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list users", err)
	}
	return items, total, nil
}

type UpdateInput struct {
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Tel      *string `json:"tel"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// Update edits profile fields, role and activation. Demoting or disabling
// the last active ADMIN is rejected.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wasActiveAdmin := u.IsActiveAdmin()
	if in.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*in.Role))
		if !domain.ValidRole(role) {
			return nil, &apperr.Error{Kind: apperr.KindValidation, Field: "role",
				Message: "role must be one of: " + strings.Join(domain.Roles, " ")}
		}
		u.Role = role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	losesAdmin := wasActiveAdmin && !u.IsActiveAdmin()
	if losesAdmin {
		if err := s.ensureOtherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Lastname != nil {
		u.Lastname = strings.TrimSpace(*in.Lastname)
	}
	if in.Tel != nil {
		u.Tel = strings.TrimSpace(*in.Tel)
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, apperr.Internal("Failed to update user", err)
	}
	return u, nil
}

// ensureOtherAdmin requires at least one active ADMIN besides the account
// being demoted, disabled or deleted.
func (s *Service) ensureOtherAdmin(ctx context.Context) error {
	n, err := s.repo.CountActiveByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return apperr.Internal("Failed to count admins", err)
	}
	if n <= 1 {
		return apperr.Validation("Cannot remove the last admin user")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.IsActiveAdmin() {
		if err := s.ensureOtherAdmin(ctx); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete user", err)
	}
	return nil
}

type ProvisionInput struct {
	Name     string
	Lastname string
	Email    string
	Tel      string
	Role     string
}

// Provision creates an account with a generated password and returns the
// plain password so the caller can deliver it. An existing account with the
// same email is returned unchanged with an empty password.
func (s *Service) Provision(ctx context.Context, in ProvisionInput) (*domain.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" {
		return nil, "", apperr.MissingField("email")
	}
	if !domain.ValidRole(in.Role) {
		return nil, "", apperr.Validation("Invalid role " + in.Role)
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", apperr.Internal("Failed to look up user", err)
	}
	if existing != nil {
		return existing, "", nil
	}

	plain := GeneratePassword()
	hashed, err := s.hash(plain)
	if err != nil {
		return nil, "", err
	}

	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Lastname:     strings.TrimSpace(in.Lastname),
		Tel:          strings.TrimSpace(in.Tel),
		Email:        in.Email,
		Password:     &hashed,
		AuthProvider: domain.ProviderLocal,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", apperr.Internal("Failed to create user", err)
	}
	return u, plain, nil
}

// GeneratePassword returns a random 16 character password that passes
// isPasswordStrong.
func GeneratePassword() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "Ax" + raw[:12] + "9z"
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
