package model

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
	TaskStatusDeleted   TaskStatus = "deleted"
)

// Task carries a monetary amount (yen) and a point value toward the
// monthly goals. Tasks are soft-deleted via Status, never hard-deleted.
// Date columns are YYYY-MM-DD strings; ScheduledDate is kept in sync with
// StartDate for rows created before the start/end range existed.
type Task struct {
	BaseModel
	MemberID      uint       `gorm:"index;not null" json:"memberId"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Amount        int64      `gorm:"default:0" json:"amount"`
	Points        int        `gorm:"default:0" json:"points"`
	Status        TaskStatus `gorm:"size:16;default:pending;index" json:"status"`
	StartDate     string     `gorm:"type:date" json:"startDate"`
	EndDate       string     `gorm:"type:date" json:"endDate"`
	ScheduledDate string     `gorm:"type:date" json:"scheduledDate"`
	Notes         string     `gorm:"size:1024" json:"notes"`
	CompletedAt   *time.Time `json:"completedAt"`
	Member        *Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
