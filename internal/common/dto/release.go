package dto

// CreateReleaseRequest represents a request to create a fiscal-note release
type CreateReleaseRequest struct {
	Description string  `json:"description" binding:"required"`
	Value       float64 `json:"value" binding:"required,gt=0"`
	NoteNumber  string  `json:"noteNumber" binding:"required"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	PeriodID    uint    `json:"periodId" binding:"required"`
}

// UpdateReleaseRequest represents a request to update a release
type UpdateReleaseRequest struct {
	Description string  `json:"description,omitempty"`
	Value       float64 `json:"value,omitempty" binding:"omitempty,gt=0"`
	NoteNumber  string  `json:"noteNumber,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// ReleaseInfo represents a fiscal-note release
type ReleaseInfo struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	NoteNumber  string  `json:"noteNumber"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	PeriodID    uint    `json:"periodId"`
}
