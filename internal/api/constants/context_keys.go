package constants

// Context keys set by middleware
const (
	ContextKeyRequestID   = "requestID"
	ContextKeyRawBody     = "rawBody"
	ContextKeyContactBody = "contactBody"
	ContextKeyBodyError   = "contactBodyError"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
)
