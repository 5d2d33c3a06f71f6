package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/osa911/contactform/internal/api/sanitization"
)

const (
	MaxEmailLength   = 254
	MaxMessageLength = 5000
)

// Error messages reported to the submitter
const (
	ErrInvalidBody      = "Invalid request body"
	ErrEmailRequired    = "Email is required"
	ErrEmailFormat      = "Invalid email format"
	ErrMessageRequired  = "Message is required"
	ErrMessageTooLong   = "Message must be 5000 characters or less"
	ErrStartTimeMissing = "Form start time is required"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	validate = newValidator()

	// fieldOrder fixes the order errors are reported in
	fieldOrder = []string{"Email", "Message", "FormStartTime"}
)

// ValidatedContact is a contact submission that passed validation. Email is
// normalized and Message is sanitized.
type ValidatedContact struct {
	Email         string `json:"email"`
	Message       string `json:"message"`
	Honeypot      string `json:"honeypot"`
	Website       string `json:"website"`
	FormStartTime string `json:"formStartTime"`
}

// Payload returns the contact in the shape of a raw submission body
func (v ValidatedContact) Payload() map[string]any {
	return map[string]any{
		"email":         v.Email,
		"message":       v.Message,
		"honeypot":      v.Honeypot,
		"website":       v.Website,
		"formStartTime": v.FormStartTime,
	}
}

// Result is the outcome of validating a raw submission
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []string          `json:"errors,omitempty"`
	Data   *ValidatedContact `json:"data,omitempty"`
}

// contactFields holds the extracted string fields checked by struct tags
type contactFields struct {
	Email         string `validate:"required,max=254,contact_email"`
	Message       string `validate:"notblank,max=5000"`
	FormStartTime string `validate:"required"`
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", validateEmail)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// validateEmail checks for a basic local@domain.tld shape
func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// Validate checks a decoded JSON body and returns the sanitized contact on
// success. It has no side effects.
func Validate(raw any) Result {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Result{Valid: false, Errors: []string{ErrInvalidBody}}
	}

	var fields contactFields
	typeErrors := map[string]string{}

	switch email := obj["email"].(type) {
	case nil:
	case string:
		fields.Email = strings.TrimSpace(email)
	default:
		typeErrors["Email"] = ErrEmailFormat
	}

	switch message := obj["message"].(type) {
	case nil:
	case string:
		fields.Message = message
		// Length is checked on the raw text, emptiness on what gets stored
		if sanitization.SanitizeMessage(message) == "" {
			typeErrors["Message"] = ErrMessageRequired
		}
	default:
		typeErrors["Message"] = ErrMessageRequired
	}

	fields.FormStartTime = formStartTime(obj["formStartTime"])

	fieldErrors := map[string]string{}
	if err := validate.Struct(fields); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Result{Valid: false, Errors: []string{ErrInvalidBody}}
		}
		for _, fe := range verrs {
			fieldErrors[fe.Field()] = translate(fe)
		}
	}
	// A wrong JSON type reads as an empty field above; report the type problem
	for name, msg := range typeErrors {
		fieldErrors[name] = msg
	}

	if len(fieldErrors) > 0 {
		errs := make([]string, 0, len(fieldErrors))
		for _, name := range fieldOrder {
			if msg, ok := fieldErrors[name]; ok {
				errs = append(errs, msg)
			}
		}
		return Result{Valid: false, Errors: errs}
	}

	return Result{
		Valid: true,
		Data: &ValidatedContact{
			Email:         sanitization.SanitizeEmail(fields.Email),
			Message:       sanitization.SanitizeMessage(fields.Message),
			Honeypot:      optionalString(obj["honeypot"]),
			Website:       optionalString(obj["website"]),
			FormStartTime: fields.FormStartTime,
		},
	}
}

func translate(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return ErrEmailRequired
		}
		return ErrEmailFormat
	case "Message":
		if fe.Tag() == "max" {
			return ErrMessageTooLong
		}
		return ErrMessageRequired
	default:
		return ErrStartTimeMissing
	}
}

// formStartTime accepts the epoch-ms timestamp as a string or a JSON number
func formStartTime(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// optionalString renders honeypot fields. Non-string values are stringified
// so a bot filling them with numbers or booleans still trips the trap.
func optionalString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return "set"
	}
}
