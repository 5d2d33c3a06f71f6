package common

// SuccessResponse is returned for every accepted submission. Message is only
// present when mail was actually sent.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of 4xx and 5xx responses
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// RateLimitResponse is the body of a 429 response. RetryAfter is in seconds.
type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// NewSuccessResponse creates a success response, message may be empty
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string, details []string) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Details: details,
	}
}

// NewRateLimitResponse creates a rate limit response
func NewRateLimitResponse(message string, retryAfter int) RateLimitResponse {
	return RateLimitResponse{
		Error:      message,
		RetryAfter: retryAfter,
	}
}
