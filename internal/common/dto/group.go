package dto

// CreateGroupRequest represents a request to create a capability group
type CreateGroupRequest struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// GroupInfo represents a capability group
type GroupInfo struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
