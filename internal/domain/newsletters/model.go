package newsletters

import "time"

type Subscriber struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"not null;uniqueIndex:idx_newsletter_email" json:"email"`
	Name           string     `json:"name,omitempty"`
	Source         string     `json:"source,omitempty"`
	IsSubscribed   bool       `gorm:"not null;default:true" json:"isSubscribed"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Subscriber) TableName() string { return "newsletter_subscribers" }
