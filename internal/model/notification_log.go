package model

import "time"

// NotificationLog marks that the daily summary for a (redirect, date) pair
// has been sent. The composite unique index lets a re-triggered batch run
// skip redirects it already reported on.
type NotificationLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RedirectID  uint      `gorm:"uniqueIndex:idx_notification_redirect_date;not null" json:"redirectId"`
	Date        string    `gorm:"type:date;uniqueIndex:idx_notification_redirect_date;not null" json:"date"` // YYYY-MM-DD
	Email       string    `gorm:"size:255" json:"email"`
	TotalCount  int64     `json:"totalCount"`
	UniqueCount int64     `json:"uniqueCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
