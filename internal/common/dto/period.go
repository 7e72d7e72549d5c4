package dto

// CreatePeriodRequest represents a request to create an accounting period
type CreatePeriodRequest struct {
	Name  string `json:"name" binding:"required"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Year  int    `json:"year" binding:"required,min=2000"`
}

// UpdatePeriodRequest represents a request to update an accounting period
type UpdatePeriodRequest struct {
	Name   string `json:"name,omitempty"`
	Closed *bool  `json:"closed,omitempty"`
}

// PeriodInfo represents an accounting period
type PeriodInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Closed bool   `json:"closed"`
}
