package service

// OutcomeKind tags the result of a submission. Sent and SilentlyDropped
// look the same to the caller; they only differ here.
type OutcomeKind int

const (
	OutcomeSent OutcomeKind = iota
	OutcomeSilentlyDropped
	OutcomeRejected
	OutcomeRateLimited
	OutcomeDispatchFailed
)

// Reasons attached to dropped and rejected outcomes
const (
	ReasonHoneypot   = "honeypot"
	ReasonSpam       = "spam"
	ReasonBody       = "body"
	ReasonValidation = "validation"
	ReasonTiming     = "timing"
)

// Public messages. The dispatch failure message never carries provider detail.
const (
	MsgSent             = "Thank you for your message! We'll get back to you soon."
	MsgValidationFailed = "Validation failed"
	MsgInvalidBody      = "Invalid request body"
	MsgTooQuick         = "Form submitted too quickly. Please try again."
	MsgRateLimited      = "Too many requests. Please try again later."
	MsgDispatchFailed   = "Failed to send message. Please try again later."
)

// Outcome is the internal result of ContactService.Submit
type Outcome struct {
	Kind OutcomeKind
	// Reason is set for SilentlyDropped and Rejected
	Reason string
	// Error and Details are the caller facing rejection
	Error   string
	Details []string
	// RetryAfter is in seconds, set for RateLimited
	RetryAfter int
}

func Sent() Outcome {
	return Outcome{Kind: OutcomeSent}
}

func SilentlyDropped(reason string) Outcome {
	return Outcome{Kind: OutcomeSilentlyDropped, Reason: reason}
}

func Rejected(reason, message string, details []string) Outcome {
	return Outcome{Kind: OutcomeRejected, Reason: reason, Error: message, Details: details}
}

func RateLimited(retryAfter int) Outcome {
	return Outcome{Kind: OutcomeRateLimited, Error: MsgRateLimited, RetryAfter: retryAfter}
}

func DispatchFailed() Outcome {
	return Outcome{Kind: OutcomeDispatchFailed, Error: MsgDispatchFailed}
}

// Label is the metrics and tracing label for o
func (o Outcome) Label() string {
	switch o.Kind {
	case OutcomeSent:
		return "sent"
	case OutcomeSilentlyDropped:
		return "dropped_" + o.Reason
	case OutcomeRejected:
		return "rejected_" + o.Reason
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeDispatchFailed:
		return "dispatch_failed"
	default:
		return "unknown"
	}
}
