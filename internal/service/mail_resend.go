package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/contactform/internal/config"
)

// ResendMailer sends mail through a Resend compatible HTTP API
type ResendMailer struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewResendMailer creates a new Resend mailer
func NewResendMailer(cfg config.MailConfig) *ResendMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendMailer{
		apiKey:   cfg.APIKey,
		endpoint: cfg.APIURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// resendRequest represents a Resend send-email request
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts msg to the provider
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if m.apiKey == "" || m.endpoint == "" {
		return ErrMailNotConfigured
	}

	payload := resendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrMailRejected, resp.StatusCode, bytes.TrimSpace(body))
	}

	return nil
}
