package partnerships

import (
	"context"
	"errors"
	"testing"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/partnerships"
	userdomain "artmarket-admin/internal/domain/users"
	"artmarket-admin/internal/infra/mailer"
	"artmarket-admin/internal/service/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	seq  uint
	rows map[uint]domain.Partnership
}

func (m *memRepo) Create(_ context.Context, p *domain.Partnership) error {
	m.seq++
	p.ID = m.seq
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id uint) (*domain.Partnership, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memRepo) Save(_ context.Context, p *domain.Partnership) error {
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memRepo) List(context.Context, ListQuery) ([]domain.Partnership, int64, error) {
	return nil, 0, nil
}

type fakeProvisioner struct {
	got []users.ProvisionInput
	err error
}

func (f *fakeProvisioner) Provision(_ context.Context, in users.ProvisionInput) (*userdomain.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	f.got = append(f.got, in)
	return &userdomain.User{ID: 77, Email: in.Email, Role: in.Role}, "Axgenerated9z", nil
}

type fakeMailer struct {
	approved, rejected []mailer.PartnershipMail
}

func (f *fakeMailer) SendPartnershipApproved(_ context.Context, p mailer.PartnershipMail) error {
	f.approved = append(f.approved, p)
	return errors.New("smtp down")
}

func (f *fakeMailer) SendPartnershipRejected(_ context.Context, p mailer.PartnershipMail) error {
	f.rejected = append(f.rejected, p)
	return nil
}

func setup() (*Service, *memRepo, *fakeProvisioner, *fakeMailer) {
	repo := &memRepo{rows: map[uint]domain.Partnership{}}
	prov := &fakeProvisioner{}
	mail := &fakeMailer{}
	return NewService(passTx{}, repo, prov, mail, nil), repo, prov, mail
}

func apply(t *testing.T, s *Service, typ string) *domain.Partnership {
	t.Helper()
	p, err := s.Apply(context.Background(), ApplyInput{
		OrganizationName: "North Gallery",
		ContactName:      "Gia  Rossi Bianchi",
		ContactEmail:     "Gia@North.test",
		Type:             typ,
	})
	require.NoError(t, err)
	return p
}

func TestApply_Validation(t *testing.T) {
	s, repo, _, _ := setup()

	_, err := s.Apply(context.Background(), ApplyInput{
		OrganizationName: "X", ContactName: "Y", ContactEmail: "y@x.test", Type: "bakery",
	})
	require.Error(t, err)
	assert.Equal(t, "type must be one of: gallery museum artist sponsor", apperr.As(err).Message)

	_, err = s.Apply(context.Background(), ApplyInput{ContactName: "Y", ContactEmail: "y@x.test", Type: "museum"})
	assert.Equal(t, "organizationName is required", apperr.As(err).Message)
	assert.Empty(t, repo.rows)
}

func TestApprove_ProvisionsUser(t *testing.T) {
	s, repo, prov, mail := setup()
	p := apply(t, s, "Gallery")
	assert.Equal(t, "gia@north.test", p.ContactEmail)

	actor := uint(1)
	got, err := s.Approve(context.Background(), p.ID, "welcome", &actor)
	require.NoError(t, err, "email failures must not fail approval")
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, repo.rows[p.ID].UserID)
	assert.Equal(t, uint(77), *repo.rows[p.ID].UserID)

	require.Len(t, prov.got, 1)
	assert.Equal(t, userdomain.RoleGallery, prov.got[0].Role)
	assert.Equal(t, "Gia", prov.got[0].Name)
	assert.Equal(t, "Rossi Bianchi", prov.got[0].Lastname)

	require.Len(t, mail.approved, 1)
	assert.Equal(t, "Axgenerated9z", mail.approved[0].Password)

	_, err = s.Approve(context.Background(), p.ID, "", &actor)
	assert.Equal(t, "Partnership has already been approved", apperr.As(err).Message)
}

func TestApprove_ProvisionFailureLeavesPending(t *testing.T) {
	s, repo, prov, mail := setup()
	p := apply(t, s, "sponsor")
	prov.err = apperr.Internal("Failed to create user", errors.New("db down"))

	_, err := s.Approve(context.Background(), p.ID, "", nil)
	require.Error(t, err)
	assert.Equal(t, domain.StatusPending, repo.rows[p.ID].Status)
	assert.Empty(t, mail.approved)
}

func TestReject(t *testing.T) {
	s, _, prov, mail := setup()
	p := apply(t, s, "artist")

	got, err := s.Reject(context.Background(), p.ID, "Not a fit", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Empty(t, prov.got)
	require.Len(t, mail.rejected, 1)
	assert.Equal(t, "Not a fit", mail.rejected[0].Note)

	_, err = s.Reject(context.Background(), 404, "", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, userdomain.RoleMuseum, domain.RoleFor(domain.TypeMuseum))
	assert.Equal(t, userdomain.RolePartner, domain.RoleFor(domain.TypeArtist))
	assert.Equal(t, userdomain.RolePartner, domain.RoleFor(domain.TypeSponsor))
}
