package model

// MonthlyGoal holds the revenue and point targets for one month.
type MonthlyGoal struct {
	BaseModel
	Month        string `gorm:"type:char(7);uniqueIndex;not null" json:"month"` // YYYY-MM
	TargetAmount int64  `gorm:"default:0" json:"targetAmount"`
	TargetPoints int    `gorm:"default:0" json:"targetPoints"`
}
