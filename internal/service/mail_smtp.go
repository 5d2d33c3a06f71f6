package service

import (
	"context"
	"net"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"github.com/osa911/contactform/internal/config"
)

// smtpSendFunc delivers e to addr. Replaced in tests.
type smtpSendFunc func(e *email.Email, addr string, auth smtp.Auth, useTLS bool) error

func sendSMTP(e *email.Email, addr string, auth smtp.Auth, useTLS bool) error {
	if useTLS {
		return e.SendWithTLS(addr, auth, nil)
	}
	return e.Send(addr, auth)
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	ssl  bool
	send smtpSendFunc
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		ssl:  cfg.SMTPSSL,
		send: sendSMTP,
	}
}

// Send delivers msg. The SMTP client has no context support, so ctx is only
// checked before the connection is opened.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.host == "" {
		return ErrMailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = msg.From
	e.To = []string{msg.To}
	if msg.ReplyTo != "" {
		e.ReplyTo = []string{msg.ReplyTo}
	}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	return m.send(e, addr, auth, m.ssl)
}
