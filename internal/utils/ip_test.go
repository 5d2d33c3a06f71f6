package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded for single", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "203.0.113.9"},
		{"forwarded for chain", map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.1, 10.0.0.2"}, "203.0.113.9"},
		{"forwarded for wins over real ip", map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "198.51.100.1"}, "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.1", "CF-Connecting-IP": "192.0.2.4"}, "198.51.100.1"},
		{"cdn header", map[string]string{"CF-Connecting-IP": "192.0.2.4"}, "192.0.2.4"},
		{"empty forwarded entry falls through", map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "198.51.100.1"}, "198.51.100.1"},
		{"nothing", map[string]string{}, UnknownClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIdentifier(h, "CF-Connecting-IP"))
		})
	}
}

func TestClientIdentifier_NoCDNHeaderConfigured(t *testing.T) {
	h := http.Header{}
	h.Set("CF-Connecting-IP", "192.0.2.4")
	assert.Equal(t, UnknownClient, ClientIdentifier(h, ""))
}

func TestGetClientIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	c.Request.Header.Set("X-Real-IP", "198.51.100.1")

	assert.Equal(t, "198.51.100.1", GetClientIdentifier(c, "CF-Connecting-IP"))
}
