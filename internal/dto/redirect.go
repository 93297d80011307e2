package dto

// CreateRedirectRequest creates a redirect. An empty slug asks the server
// to generate one.
type CreateRedirectRequest struct {
	Slug                  string `json:"slug" binding:"omitempty,max=64"`
	TargetURL             string `json:"targetUrl" binding:"required,url" msg:"targetUrl must be a valid URL"`
	NotificationEmail     string `json:"notificationEmail" binding:"omitempty,email" msg:"notificationEmail must be a valid email address"`
	NotificationFrequency string `json:"notificationFrequency" binding:"omitempty,oneof=none daily_6am" msg:"notificationFrequency must be none or daily_6am"`
}

// UpdateRedirectRequest edits destination and notification settings; the
// slug itself is immutable once issued.
type UpdateRedirectRequest struct {
	TargetURL             string `json:"targetUrl" binding:"required,url" msg:"targetUrl must be a valid URL"`
	NotificationEmail     string `json:"notificationEmail" binding:"omitempty,email" msg:"notificationEmail must be a valid email address"`
	NotificationFrequency string `json:"notificationFrequency" binding:"required,oneof=none daily_6am" msg:"notificationFrequency must be none or daily_6am"`
}
