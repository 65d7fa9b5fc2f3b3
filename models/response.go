package models

// MessageResponse is the {msg} envelope used by admin and chat endpoints.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// ErrorResponse is the generic failure envelope. Error carries internal
// detail only in development.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
