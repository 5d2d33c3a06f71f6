package service

import (
	"context"
	"time"

	"github.com/osa911/contactform/internal/logging"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	AuditEventContactSent           AuditEventType = "CONTACT_SENT"
	AuditEventContactDropped        AuditEventType = "CONTACT_DROPPED"
	AuditEventContactRejected       AuditEventType = "CONTACT_REJECTED"
	AuditEventContactRateLimited    AuditEventType = "CONTACT_RATE_LIMITED"
	AuditEventContactDispatchFailed AuditEventType = "CONTACT_DISPATCH_FAILED"
)

// AuditService writes one audit line per submission. Silent drops are only
// distinguishable from genuine sends here.
type AuditService struct {
	logger *logging.Logger
	now    func() time.Time
}

// NewAuditService creates a new audit service
func NewAuditService(logger *logging.Logger) *AuditService {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &AuditService{logger: logger, now: time.Now}
}

// EventType maps an outcome to its audit event
func EventType(o Outcome) AuditEventType {
	switch o.Kind {
	case OutcomeSent:
		return AuditEventContactSent
	case OutcomeSilentlyDropped:
		return AuditEventContactDropped
	case OutcomeRejected:
		return AuditEventContactRejected
	case OutcomeRateLimited:
		return AuditEventContactRateLimited
	default:
		return AuditEventContactDispatchFailed
	}
}

// LogSubmission logs the outcome of a submission
func (s *AuditService) LogSubmission(ctx context.Context, o Outcome, clientID string, details map[string]interface{}) {
	eventType := EventType(o)

	event := map[string]interface{}{
		"timestamp": s.now().UTC(),
		"outcome":   o.Label(),
	}
	if o.RetryAfter > 0 {
		event["retry_after"] = o.RetryAfter
	}
	if len(o.Details) > 0 {
		event["errors"] = o.Details
	}

	// Add any additional details
	for k, v := range details {
		event[k] = v
	}

	switch o.Kind {
	case OutcomeDispatchFailed:
		s.logger.Error("[AUDIT] %s | IP: %s | Details: %v", eventType, clientID, event)
	case OutcomeRateLimited, OutcomeSilentlyDropped:
		s.logger.Warn("[AUDIT] %s | IP: %s | Details: %v", eventType, clientID, event)
	default:
		s.logger.Info("[AUDIT] %s | IP: %s | Details: %v", eventType, clientID, event)
	}
}
