package dto

// CreateTaskRequest registers a task. Amount is yen; dates are YYYY-MM-DD.
type CreateTaskRequest struct {
	Title     string `json:"title" binding:"required,max=255" msg:"title is required"`
	MemberID  uint   `json:"memberId" binding:"required" msg:"memberId is required"`
	Amount    int64  `json:"amount" binding:"min=0" msg:"amount cannot be negative"`
	Points    int    `json:"points" binding:"oneof=0 10 20 30 40 50" msg:"points must be one of 0/10/20/30/40/50"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02" msg:"startDate must be YYYY-MM-DD"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02" msg:"endDate must be YYYY-MM-DD"`
	Notes     string `json:"notes" binding:"omitempty,max=1024"`
}

// UpdateTaskRequest edits an existing task.
type UpdateTaskRequest struct {
	Title     string `json:"title" binding:"required,max=255" msg:"title is required"`
	MemberID  uint   `json:"memberId" binding:"required" msg:"memberId is required"`
	Amount    int64  `json:"amount" binding:"min=0" msg:"amount cannot be negative"`
	Points    int    `json:"points" binding:"oneof=0 10 20 30 40 50" msg:"points must be one of 0/10/20/30/40/50"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02" msg:"startDate must be YYYY-MM-DD"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02" msg:"endDate must be YYYY-MM-DD"`
	Notes     string `json:"notes" binding:"omitempty,max=1024"`
}

// UpdateTaskStatusRequest toggles a task's status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled deleted" msg:"status must be pending, completed, cancelled or deleted"`
}
