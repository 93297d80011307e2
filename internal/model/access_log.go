package model

import "time"

// AccessLog records one resolved redirect hit. Rows are written
// best-effort off the response path and are never updated afterwards.
type AccessLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RedirectID uint      `gorm:"index;not null" json:"redirectId"`
	ParamID    string    `gorm:"size:128" json:"paramId"` // caller-supplied correlation id
	IPAddress  string    `gorm:"size:64" json:"ipAddress"`
	UserAgent  string    `gorm:"size:512" json:"userAgent"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
