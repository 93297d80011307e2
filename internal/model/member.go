package model

// Member is a team member tasks are assigned to. Color is the hex badge
// color shown in the dashboard.
type Member struct {
	BaseModel
	Name  string `gorm:"size:64;not null" json:"name"`
	Color string `gorm:"size:16" json:"color"`
}
