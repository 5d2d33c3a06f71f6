package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UnknownClient is returned when no forwarding header identifies the client
const UnknownClient = "unknown"

// ClientIdentifier resolves the client from forwarding headers, preferring
// the first X-Forwarded-For entry, then X-Real-IP, then the CDN header.
// The socket address is never used since every request arrives through the
// proxy.
func ClientIdentifier(h http.Header, cdnHeader string) string {
	if forwardedFor := h.Get("X-Forwarded-For"); forwardedFor != "" {
		// Format: client, proxy1, proxy2, ...
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(h.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if cdnHeader != "" {
		if ip := strings.TrimSpace(h.Get(cdnHeader)); ip != "" {
			return ip
		}
	}

	return UnknownClient
}

// GetClientIdentifier is ClientIdentifier for a gin request
func GetClientIdentifier(c *gin.Context, cdnHeader string) string {
	return ClientIdentifier(c.Request.Header, cdnHeader)
}
