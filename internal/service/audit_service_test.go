package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/osa911/contactform/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestEventType(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    AuditEventType
	}{
		{Sent(), AuditEventContactSent},
		{SilentlyDropped(ReasonSpam), AuditEventContactDropped},
		{Rejected(ReasonValidation, MsgValidationFailed, nil), AuditEventContactRejected},
		{RateLimited(60), AuditEventContactRateLimited},
		{DispatchFailed(), AuditEventContactDispatchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.Label(), func(t *testing.T) {
			assert.Equal(t, tt.want, EventType(tt.outcome))
		})
	}
}

func TestAuditService_LogSubmission(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditService(logging.NewWriterLogger(&buf))
	audit.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	audit.LogSubmission(context.Background(), SilentlyDropped(ReasonSpam), "203.0.113.7", map[string]interface{}{
		"spam_score": 65,
	})

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[AUDIT] CONTACT_DROPPED | IP: 203.0.113.7")
	assert.Contains(t, out, "outcome:dropped_spam")
	assert.Contains(t, out, "spam_score:65")
}

func TestAuditService_LogSubmission_Levels(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		level   string
	}{
		{"sent", Sent(), "[INFO]"},
		{"rejected", Rejected(ReasonTiming, MsgTooQuick, nil), "[INFO]"},
		{"rate limited", RateLimited(30), "[WARN]"},
		{"dispatch failed", DispatchFailed(), "[ERROR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewAuditService(logging.NewWriterLogger(&buf)).LogSubmission(context.Background(), tt.outcome, "client", nil)
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestAuditService_IncludesRetryAfterAndErrors(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditService(logging.NewWriterLogger(&buf))

	audit.LogSubmission(context.Background(), RateLimited(42), "client", nil)
	assert.Contains(t, buf.String(), "retry_after:42")

	buf.Reset()
	audit.LogSubmission(context.Background(), Rejected(ReasonValidation, MsgValidationFailed, []string{"Email is required"}), "client", nil)
	assert.Contains(t, buf.String(), "Email is required")
}
