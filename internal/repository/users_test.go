package repository

import (
	"testing"

	domain "artmarket-admin/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CountActiveByRole(t *testing.T) {
	ctx := txContext(t)
	r := NewUserRepository(testDB)

	before, err := r.CountActiveByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, r.Create(ctx, &domain.User{Email: "count-active@example.com", Role: domain.RoleAdmin, IsActive: true}))
	disabled := &domain.User{Email: "count-disabled@example.com", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, r.Create(ctx, disabled))
	disabled.IsActive = false
	require.NoError(t, r.Save(ctx, disabled))
	require.NoError(t, r.Create(ctx, &domain.User{Email: "count-user@example.com", Role: domain.RoleUser, IsActive: true}))

	after, err := r.CountActiveByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}
