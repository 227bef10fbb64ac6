package model

import "time"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error      string `json:"error"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
}

// NewErrorResponse builds the standard error body for a failure message
// and HTTP status.
func NewErrorResponse(message string, statusCode int) ErrorResponse {
	return ErrorResponse{
		Error:      message,
		Status:     "error",
		StatusCode: statusCode,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}
