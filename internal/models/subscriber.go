package models

import "time"

// Subscriber is an email captured by the landing page form.
type Subscriber struct {
	BaseModel
	Email        string    `gorm:"size:320;uniqueIndex;not null" json:"email"`
	Locale       string    `gorm:"size:8;not null;default:EN" json:"locale"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
