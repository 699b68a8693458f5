// Package api defines the shared JSON response shapes for the gateway's HTTP surface.
package api

// Response is the body returned on success.
// Data carries the payload; Message is used for payload-less confirmations.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body returned on any failure.
// Internal error details never go into Error; only operator-safe messages.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK wraps a payload in a success response.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Error wraps a human-readable message in a failure response.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}
