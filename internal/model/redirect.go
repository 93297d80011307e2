package model

// NotificationFrequency controls whether a redirect gets a daily summary
// email.
type NotificationFrequency string

const (
	FrequencyNone     NotificationFrequency = "none"
	FrequencyDaily6AM NotificationFrequency = "daily_6am"
)

// Redirect maps a short slug to a destination URL. The slug is the lookup
// key on the public /r/ path and must stay unique.
type Redirect struct {
	BaseModel
	Slug                  string                `gorm:"uniqueIndex;size:64;not null" json:"slug"`
	TargetURL             string                `gorm:"size:2048;not null" json:"targetUrl"`
	NotificationEmail     string                `gorm:"size:255" json:"notificationEmail"`
	NotificationFrequency NotificationFrequency `gorm:"size:16;default:none" json:"notificationFrequency"`
}
