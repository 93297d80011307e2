package model

import "time"

// User is an admin account for the dashboard.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string `gorm:"size:64" json:"name"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
}

// Session is the server-side record backing the session cookie. Expiry
// slides forward on every successful validation.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}
