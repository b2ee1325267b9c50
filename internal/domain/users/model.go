package users

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleUser    = "USER"
	RoleGallery = "GALLERY"
	RoleMuseum  = "MUSEUM"
	RolePartner = "PARTNER"
)

var Roles = []string{RoleAdmin, RoleUser, RoleGallery, RoleMuseum, RolePartner}

func ValidRole(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Lastname     string  `json:"lastname"`
	Tel          string  `json:"tel,omitempty"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"authProvider"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'USER';index" json:"role"`
	IsActive     bool    `gorm:"not null;default:true" json:"isActive"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

func (u *User) IsActiveAdmin() bool {
	return u.Role == RoleAdmin && u.IsActive
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Owns reports whether a may manage a record owned by owner. Admins manage
// everything.
func (a Actor) Owns(owner *uint) bool {
	if a.IsAdmin() {
		return true
	}
	return a.ID != 0 && owner != nil && *owner == a.ID
}
