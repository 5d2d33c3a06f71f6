package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/osa911/contactform/internal/api/dto/v1/contact"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

type submitOptions struct {
	url       string
	req       contact.ContactRequest
	formAge   time.Duration
	userAgent string
	timeout   time.Duration
	quiet     bool
}

func newSubmitCmd() *cobra.Command {
	opts := submitOptions{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a submission to a running contact API",
		Long: `Send a submission to a running contact API and print the response.

Example:
  contactctl submit --url https://api.northwind.digital --email jane@acme.com \
    --message "Smoke test after deploy"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			var s *spinner.Spinner
			if !opts.quiet {
				s = spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
				s.Suffix = " Submitting to " + opts.url + "..."
				s.Start()
			}
			status, body, err := submit(ctx, http.DefaultClient, opts, time.Now())
			if s != nil {
				s.Stop()
			}
			if err != nil {
				return err
			}

			logger.Info("Contact API answered %d", status)
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(body)))
			if status >= 400 {
				return fmt.Errorf("submission failed with status %d", status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "http://localhost:8080", "Base URL of the contact API")
	cmd.Flags().StringVar(&opts.req.Email, "email", "", "Submitter email")
	cmd.Flags().StringVar(&opts.req.Message, "message", "", "Message body")
	cmd.Flags().StringVar(&opts.req.Honeypot, "honeypot", "", "Honeypot field value, non-empty to test silent drops")
	cmd.Flags().DurationVar(&opts.formAge, "form-age", 5*time.Second, "How long ago the form was opened")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", "contactctl (Mozilla/5.0 compatible)", "User-Agent header")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "Request timeout")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not show a spinner")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func submit(ctx context.Context, client *http.Client, opts submitOptions, now time.Time) (int, []byte, error) {
	payload := opts.req
	payload.FormStartTime = strconv.FormatInt(now.Add(-opts.formAge).UnixMilli(), 10)

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	endpoint := strings.TrimRight(opts.url, "/") + "/api/contact"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.userAgent != "" {
		req.Header.Set("User-Agent", opts.userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to reach contact API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
