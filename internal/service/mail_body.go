package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mssola/useragent"
)

// ContactEmail is what goes into the operator notification
type ContactEmail struct {
	Email       string
	Message     string
	ClientID    string
	UserAgent   string
	Referer     string
	SubmittedAt time.Time
}

// BuildContactMessage renders the notification for a genuine submission.
// Reply-to is the submitter so the operator can answer directly.
func BuildContactMessage(from, to string, c ContactEmail) Message {
	var b strings.Builder

	b.WriteString("<h2>New contact form submission</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(c.Email))
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p>\n<p>%s</p>\n", html.EscapeString(c.Message))
	b.WriteString("<hr>\n<p><small>\n")
	fmt.Fprintf(&b, "Submitted: %s<br>\n", c.SubmittedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Client: %s<br>\n", html.EscapeString(c.ClientID))
	fmt.Fprintf(&b, "User agent: %s<br>\n", html.EscapeString(orNone(c.UserAgent)))
	if desc := describeUserAgent(c.UserAgent); desc != "" {
		fmt.Fprintf(&b, "Browser: %s<br>\n", html.EscapeString(desc))
	}
	fmt.Fprintf(&b, "Referer: %s\n", html.EscapeString(orNone(c.Referer)))
	b.WriteString("</small></p>\n")

	return Message{
		From:    from,
		To:      to,
		ReplyTo: c.Email,
		Subject: "New contact form submission from " + c.Email,
		HTML:    b.String(),
	}
}

// describeUserAgent summarizes ua as "Chrome 120.0.0.0 on Windows 10"
func describeUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return ""
	}

	parsed := useragent.New(ua)
	name, version := parsed.Browser()
	if name == "" {
		return ""
	}

	desc := strings.TrimSpace(name + " " + version)
	if osName := parsed.OS(); osName != "" {
		desc += " on " + osName
	}
	if parsed.Mobile() {
		desc += " (mobile)"
	}
	if parsed.Bot() {
		desc += " (bot)"
	}
	return desc
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
