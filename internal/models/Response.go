package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Steps must be between 1 and 100"`
}
