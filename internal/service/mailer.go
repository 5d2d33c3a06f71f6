package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/osa911/contactform/internal/config"
)

// Message is an outbound email. HTML is the only body format.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer hands a message to a mail provider
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer builds the mailer selected by cfg.Provider. Missing credentials
// are not an error here; Send reports ErrMailNotConfigured instead.
func NewMailer(cfg config.MailConfig) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", config.MailProviderResend:
		return NewResendMailer(cfg), nil
	case config.MailProviderSMTP:
		return NewSMTPMailer(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
