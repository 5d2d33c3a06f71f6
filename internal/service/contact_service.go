package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/osa911/contactform/internal/api/validation"
	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/metrics"
	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/spam"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/osa911/contactform/internal/service"

// UnknownClient is the identifier used when no forwarding header is present
const UnknownClient = "unknown"

// ContactConfig holds the pipeline thresholds and mail addressing
type ContactConfig struct {
	Limit          int
	Window         time.Duration
	MinSubmitDelay time.Duration
	From           string
	To             string
}

// DefaultContactConfig returns 5 submissions per 15 minutes and a 3 second
// minimum fill time
func DefaultContactConfig() ContactConfig {
	return ContactConfig{
		Limit:          5,
		Window:         15 * time.Minute,
		MinSubmitDelay: 3 * time.Second,
	}
}

// ContactConfigFrom maps the application config onto the pipeline
func ContactConfigFrom(cfg *config.Config) ContactConfig {
	return ContactConfig{
		Limit:          cfg.RateLimitMax,
		Window:         cfg.RateLimitWindow,
		MinSubmitDelay: cfg.MinSubmitDelay,
		From:           cfg.Mail.From,
		To:             cfg.Mail.To,
	}
}

// Submission is one inbound request as seen by the pipeline. Body is the
// decoded JSON; BodyErr is set when the body could not be decoded.
type Submission struct {
	Body      any
	BodyErr   error
	ClientID  string
	UserAgent string
	Referer   string
	Origin    string
}

// ContactService runs the contact form pipeline
type ContactService struct {
	limiter  *ratelimit.Limiter
	detector *spam.Detector
	mailer   Mailer
	cfg      ContactConfig
	metrics  *metrics.Metrics
	logger   *logging.Logger
	audit    *AuditService
	now      func() time.Time
	tracer   trace.Tracer
}

type ContactOption func(*ContactService)

// WithServiceClock overrides the clock used for the timing check
func WithServiceClock(now func() time.Time) ContactOption {
	return func(s *ContactService) {
		s.now = now
	}
}

func WithMetrics(m *metrics.Metrics) ContactOption {
	return func(s *ContactService) {
		s.metrics = m
	}
}

func WithLogger(l *logging.Logger) ContactOption {
	return func(s *ContactService) {
		s.logger = l
	}
}

// NewContactService creates a new contact service
func NewContactService(limiter *ratelimit.Limiter, detector *spam.Detector, mailer Mailer, cfg ContactConfig, opts ...ContactOption) *ContactService {
	s := &ContactService{
		limiter:  limiter,
		detector: detector,
		mailer:   mailer,
		cfg:      cfg,
		now:      time.Now,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.GetGlobalLogger()
	}
	s.audit = NewAuditService(s.logger)
	s.audit.now = s.now
	return s
}

// Submit runs every check in order and stops at the first one that decides
// the outcome. It never returns an error; failures are outcomes.
func (s *ContactService) Submit(ctx context.Context, sub Submission) Outcome {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	clientID := sub.ClientID
	if clientID == "" {
		clientID = UnknownClient
	}

	details := map[string]interface{}{}
	outcome := s.submit(ctx, clientID, sub, details)

	s.audit.LogSubmission(ctx, outcome, clientID, details)
	span.SetAttributes(attribute.String("contact.outcome", outcome.Label()))
	if outcome.Kind == OutcomeDispatchFailed {
		span.SetStatus(codes.Error, "mail dispatch failed")
	}
	s.metrics.IncrementSubmission(outcome.Label())
	return outcome
}

func (s *ContactService) submit(ctx context.Context, clientID string, sub Submission, details map[string]interface{}) Outcome {
	res, err := s.limiter.Allow(ctx, clientID, s.cfg.Limit, s.cfg.Window)
	if err != nil {
		// Fail open: a broken store must not take the form down
		s.logger.Warn("Rate limit store unavailable for %s: %v", clientID, err)
	} else if !res.Success {
		s.metrics.IncrementRateLimited()
		return RateLimited(res.RetryAfterSeconds)
	}

	if sub.BodyErr != nil {
		s.logger.Debug("Undecodable contact body from %s: %v", clientID, sub.BodyErr)
		return Rejected(ReasonBody, MsgInvalidBody, nil)
	}

	result := validation.Validate(sub.Body)
	if !result.Valid {
		return Rejected(ReasonValidation, MsgValidationFailed, result.Errors)
	}
	contact := result.Data

	if contact.Honeypot != "" || contact.Website != "" {
		return SilentlyDropped(ReasonHoneypot)
	}

	now := s.now()
	if !s.filledSlowly(contact.FormStartTime, now) {
		return Rejected(ReasonTiming, MsgTooQuick, nil)
	}

	verdict := s.detector.Detect(spam.Input{
		Email:     contact.Email,
		Message:   contact.Message,
		UserAgent: sub.UserAgent,
		Referer:   sub.Referer,
		Origin:    sub.Origin,
		ClientIP:  clientID,
	})
	s.metrics.ObserveSpamScore(verdict.Score)
	details["spam_score"] = verdict.Score
	if verdict.IsSpam {
		details["spam_reasons"] = strings.Join(verdict.Reasons, "; ")
		return SilentlyDropped(ReasonSpam)
	}

	msg := BuildContactMessage(s.cfg.From, s.cfg.To, ContactEmail{
		Email:       contact.Email,
		Message:     contact.Message,
		ClientID:    clientID,
		UserAgent:   sub.UserAgent,
		Referer:     sub.Referer,
		SubmittedAt: now,
	})

	if err := s.dispatch(ctx, msg); err != nil {
		// Provider detail stays in the log
		details["error"] = err.Error()
		return DispatchFailed()
	}

	return Sent()
}

func (s *ContactService) dispatch(ctx context.Context, msg Message) error {
	ctx, span := s.tracer.Start(ctx, "contact.dispatch")
	defer span.End()

	start := time.Now()
	err := s.send(ctx, msg)
	s.metrics.ObserveDispatch(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
	}
	return err
}

// send turns a mailer panic into an ordinary dispatch error
func (s *ContactService) send(ctx context.Context, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMailerPanic, r)
		}
	}()
	return s.mailer.Send(ctx, msg)
}

// filledSlowly reports whether at least MinSubmitDelay passed since the form
// was opened. A start time without leading digits fails the check. This is
// stricter than a parseInt reading, where the NaN difference would pass.
func (s *ContactService) filledSlowly(formStartTime string, now time.Time) bool {
	startMs, ok := parseLeadingInt(formStartTime)
	if !ok {
		return false
	}
	return now.UnixMilli()-startMs >= s.cfg.MinSubmitDelay.Milliseconds()
}

// parseLeadingInt reads an optional sign and the digits that follow it,
// ignoring leading whitespace and anything after the digits.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
