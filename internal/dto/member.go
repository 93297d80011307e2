package dto

// CreateMemberRequest adds a team member.
type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required,max=64" msg:"name is required"`
	Color string `json:"color" binding:"required,hexcolor" msg:"color must be a hex color"`
}

// UpdateMemberRequest edits a team member.
type UpdateMemberRequest struct {
	Name  string `json:"name" binding:"required,max=64" msg:"name is required"`
	Color string `json:"color" binding:"required,hexcolor" msg:"color must be a hex color"`
}
