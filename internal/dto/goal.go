package dto

// UpsertGoalRequest sets the monthly revenue/point targets.
type UpsertGoalRequest struct {
	TargetAmount int64 `json:"targetAmount" binding:"min=0" msg:"targetAmount cannot be negative"`
	TargetPoints int   `json:"targetPoints" binding:"min=0" msg:"targetPoints cannot be negative"`
}
