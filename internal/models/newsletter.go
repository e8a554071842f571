package models

import (
	"time"

	"github.com/lib/pq" // pq.StringArray maps to text[]
)

// Subscriber is a newsletter signup. Email is stored lower-cased.
type Subscriber struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Topics         pq.StringArray `gorm:"type:text[]" json:"topics"`
	Active         bool           `gorm:"not null;default:true" json:"active"`
	SubscribedAt   time.Time      `json:"subscribed_at"`
	UnsubscribedAt *time.Time     `json:"unsubscribed_at,omitempty"`
}

func (Subscriber) TableName() string {
	return "newsletter_subscribers"
}
