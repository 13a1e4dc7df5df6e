package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	PushToken string    `json:"push_token,omitempty"`

	Timestamp
}

// NotificationSettings is created lazily on first read or write; absence of a
// row means the user still runs on defaults.
type NotificationSettings struct {
	UserID     uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Enabled    bool      `json:"enabled"`
	DaysBefore int       `json:"days_before"`
	Hour       int       `json:"hour"`
	Minute     int       `json:"minute"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
