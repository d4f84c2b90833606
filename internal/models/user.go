package models

// User represents an authenticated dashboard account.
type User struct {
	BaseModel
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DisplayName  string `gorm:"size:255" json:"displayName"`
	PasswordHash string `json:"-"`
}
