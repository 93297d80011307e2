package dto

// LoginRequest signs an admin in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" msg:"email must be a valid email address"`
	Password string `json:"password" binding:"required" msg:"password is required"`
}
