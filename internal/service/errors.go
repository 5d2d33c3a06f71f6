package service

import "errors"

// Sentinel errors for the mail layer
var (
	ErrMailNotConfigured = errors.New("mail provider not configured")
	ErrMailRejected      = errors.New("mail provider rejected the message")
	ErrUnknownProvider   = errors.New("unknown mail provider")
	ErrMailerPanic       = errors.New("mailer panicked")
)
