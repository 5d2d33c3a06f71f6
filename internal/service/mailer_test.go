package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/jordan-wright/email"
	"github.com/osa911/contactform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		From:    "Contact Form <noreply@northwind.digital>",
		To:      "hello@northwind.digital",
		ReplyTo: "jane@acme.com",
		Subject: "New contact form submission from jane@acme.com",
		HTML:    "<p>hi</p>",
	}
}

func TestResendMailer_Send(t *testing.T) {
	var got resendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	m := NewResendMailer(config.MailConfig{APIKey: "re_test", APIURL: srv.URL, Timeout: time.Second})
	require.NoError(t, m.Send(context.Background(), testMessage()))

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, []string{"hello@northwind.digital"}, got.To)
	assert.Equal(t, "jane@acme.com", got.ReplyTo)
	assert.Equal(t, "<p>hi</p>", got.HTML)
}

func TestResendMailer_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	m := NewResendMailer(config.MailConfig{APIKey: "re_test", APIURL: srv.URL})
	err := m.Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMailRejected))
	assert.Contains(t, err.Error(), "422")
}

func TestResendMailer_NotConfigured(t *testing.T) {
	m := NewResendMailer(config.MailConfig{APIURL: "https://api.resend.com/emails"})
	assert.ErrorIs(t, m.Send(context.Background(), testMessage()), ErrMailNotConfigured)
}

func TestResendMailer_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewResendMailer(config.MailConfig{APIKey: "re_test", APIURL: srv.URL})
	assert.ErrorIs(t, m.Send(ctx, testMessage()), context.Canceled)
}

func TestSMTPMailer_Send(t *testing.T) {
	var (
		captured *email.Email
		addr     string
		usedTLS  bool
		gotAuth  smtp.Auth
	)
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 465, SMTPUser: "u", SMTPPass: "p", SMTPSSL: true})
	m.send = func(e *email.Email, a string, auth smtp.Auth, tls bool) error {
		captured, addr, gotAuth, usedTLS = e, a, auth, tls
		return nil
	}

	require.NoError(t, m.Send(context.Background(), testMessage()))

	assert.Equal(t, "smtp.example.com:465", addr)
	assert.True(t, usedTLS)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, []string{"hello@northwind.digital"}, captured.To)
	assert.Equal(t, []string{"jane@acme.com"}, captured.ReplyTo)
	assert.Equal(t, "<p>hi</p>", string(captured.HTML))
}

func TestSMTPMailer_NoAuthWithoutUser(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "localhost", SMTPPort: 25})
	m.send = func(_ *email.Email, _ string, auth smtp.Auth, _ bool) error {
		assert.Nil(t, auth)
		return nil
	}
	require.NoError(t, m.Send(context.Background(), testMessage()))
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{})
	assert.ErrorIs(t, m.Send(context.Background(), testMessage()), ErrMailNotConfigured)
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(config.MailConfig{Provider: config.MailProviderResend})
	require.NoError(t, err)
	assert.IsType(t, &ResendMailer{}, m)

	m, err = NewMailer(config.MailConfig{Provider: "SMTP"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = NewMailer(config.MailConfig{Provider: "pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestBuildContactMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	msg := BuildContactMessage("from@northwind.digital", "to@northwind.digital", ContactEmail{
		Email:       "jane@acme.com",
		Message:     "<script>alert(1)</script> & more",
		ClientID:    "203.0.113.9",
		UserAgent:   testUA,
		SubmittedAt: at,
	})

	assert.Equal(t, "jane@acme.com", msg.ReplyTo)
	assert.Equal(t, "to@northwind.digital", msg.To)
	assert.Equal(t, "New contact form submission from jane@acme.com", msg.Subject)
	assert.Contains(t, msg.HTML, "&lt;script&gt;alert(1)&lt;/script&gt; &amp; more")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "2026-03-01T12:30:00Z")
	assert.Contains(t, msg.HTML, "203.0.113.9")
	assert.Contains(t, msg.HTML, "Referer: (none)")
	assert.True(t, strings.Contains(msg.HTML, "Browser: Chrome"), msg.HTML)
}

func TestDescribeUserAgent(t *testing.T) {
	assert.Empty(t, describeUserAgent(""))
	assert.Contains(t, describeUserAgent(testUA), "Windows")
}
