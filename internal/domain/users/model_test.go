package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorOwns(t *testing.T) {
	seven, eight := uint(7), uint(8)

	assert.True(t, Actor{ID: 1, Role: RoleAdmin}.Owns(nil))
	assert.True(t, Actor{ID: 7, Role: RoleGallery}.Owns(&seven))
	assert.False(t, Actor{ID: 7, Role: RoleGallery}.Owns(&eight))
	assert.False(t, Actor{ID: 7, Role: RoleGallery}.Owns(nil))
	assert.False(t, Actor{Role: RoleMuseum}.Owns(nil))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RolePartner))
	assert.False(t, ValidRole("admin"))
}
