package partnerships

import (
	"time"

	"artmarket-admin/internal/domain/users"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeGallery = "gallery"
	TypeMuseum  = "museum"
	TypeArtist  = "artist"
	TypeSponsor = "sponsor"
)

type Partnership struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	OrganizationName string `gorm:"not null" json:"organizationName"`
	ContactName      string `gorm:"not null" json:"contactName"`
	ContactEmail     string `gorm:"not null;index" json:"contactEmail"`
	Phone            string `json:"phone,omitempty"`
	Website          string `json:"website,omitempty"`
	Type             string `gorm:"type:varchar(16);not null" json:"type"`
	Message          string `json:"message,omitempty"`

	Status     string     `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	ReviewNote string     `json:"reviewNote,omitempty"`
	ReviewedBy *uint      `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	UserID     *uint      `json:"userId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func ValidType(t string) bool {
	switch t {
	case TypeGallery, TypeMuseum, TypeArtist, TypeSponsor:
		return true
	}
	return false
}

// RoleFor maps a partnership type to the role of the provisioned account.
func RoleFor(t string) string {
	switch t {
	case TypeGallery:
		return users.RoleGallery
	case TypeMuseum:
		return users.RoleMuseum
	default:
		return users.RolePartner
	}
}
