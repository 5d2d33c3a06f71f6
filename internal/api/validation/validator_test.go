package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]any {
	return map[string]any{
		"email":         "test@example.com",
		"message":       "Hello, I would like to discuss a project.",
		"honeypot":      "",
		"website":       "",
		"formStartTime": "1700000000000",
	}
}

func decode(t *testing.T, body string) any {
	t.Helper()
	var raw any
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestValidate_ValidPayload(t *testing.T) {
	res := Validate(validPayload())

	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.NotNil(t, res.Data)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "test@example.com", res.Data.Email)
	assert.Equal(t, "1700000000000", res.Data.FormStartTime)
}

func TestValidate_NotAnObject(t *testing.T) {
	for _, raw := range []any{nil, "text", 42.0, []any{"a"}, true} {
		res := Validate(raw)
		assert.False(t, res.Valid)
		assert.Equal(t, []string{ErrInvalidBody}, res.Errors)
		assert.Nil(t, res.Data)
	}
}

func TestValidate_MessageRequired(t *testing.T) {
	tests := []struct {
		name    string
		message any
		present bool
	}{
		{name: "missing"},
		{name: "empty", message: "", present: true},
		{name: "whitespace only", message: "   \t ", present: true},
		{name: "not a string", message: 12.0, present: true},
		{name: "control characters only", message: "\x01\x02\x03", present: true},
		{name: "controls around a space", message: "\x01 \x02\u0085", present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			delete(p, "message")
			if tt.present {
				p["message"] = tt.message
			}

			res := Validate(p)
			assert.False(t, res.Valid)
			assert.Contains(t, res.Errors, ErrMessageRequired)
		})
	}
}

func TestValidate_MessageLength(t *testing.T) {
	p := validPayload()
	p["message"] = strings.Repeat("a", MaxMessageLength)
	res := Validate(p)
	assert.True(t, res.Valid, "exactly %d characters must pass: %v", MaxMessageLength, res.Errors)

	p["message"] = strings.Repeat("a", MaxMessageLength+1)
	res = Validate(p)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{ErrMessageTooLong}, res.Errors)
}

func TestValidate_MessageLengthCountsCharacters(t *testing.T) {
	p := validPayload()
	p["message"] = strings.Repeat("ü", MaxMessageLength)
	assert.True(t, Validate(p).Valid)
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email any
		want  string
	}{
		{"test@example.com", ""},
		{"  Test@Example.COM  ", ""},
		{"first.last+tag@sub.example.co.uk", ""},
		{"", ErrEmailRequired},
		{"plainaddress", ErrEmailFormat},
		{"missing@tld", ErrEmailFormat},
		{"@example.com", ErrEmailFormat},
		{"two@@example.com", ErrEmailFormat},
		{"spaces in@example.com", ErrEmailFormat},
		{strings.Repeat("a", 64) + "@" + strings.Repeat("b", 186) + ".com", ErrEmailFormat},
		{123.0, ErrEmailFormat},
	}

	for _, tt := range tests {
		p := validPayload()
		p["email"] = tt.email
		res := Validate(p)
		if tt.want == "" {
			assert.True(t, res.Valid, "email %v: %v", tt.email, res.Errors)
			continue
		}
		assert.False(t, res.Valid, "email %v", tt.email)
		assert.Equal(t, []string{tt.want}, res.Errors, "email %v", tt.email)
	}
}

func TestValidate_EmailMissing(t *testing.T) {
	p := validPayload()
	delete(p, "email")
	res := Validate(p)
	assert.Equal(t, []string{ErrEmailRequired}, res.Errors)
}

func TestValidate_FormStartTime(t *testing.T) {
	p := validPayload()
	delete(p, "formStartTime")
	assert.Equal(t, []string{ErrStartTimeMissing}, Validate(p).Errors)

	p["formStartTime"] = 1700000000000.0
	res := Validate(p)
	require.True(t, res.Valid)
	assert.Equal(t, "1700000000000", res.Data.FormStartTime)
}

func TestValidate_CollectsErrorsInFieldOrder(t *testing.T) {
	res := Validate(map[string]any{})
	assert.Equal(t, []string{ErrEmailRequired, ErrMessageRequired, ErrStartTimeMissing}, res.Errors)
}

func TestValidate_Sanitizes(t *testing.T) {
	raw := decode(t, `{"email":"  Jane@Example.COM ","message":"  Hi\u0000 there   friend\u0007 ","formStartTime":"1"}`)

	res := Validate(raw)
	require.True(t, res.Valid)
	assert.Equal(t, "jane@example.com", res.Data.Email)
	assert.Equal(t, "Hi there friend", res.Data.Message)
	assert.Equal(t, "", res.Data.Honeypot)
	assert.Equal(t, "", res.Data.Website)
}

func TestValidate_HoneypotValues(t *testing.T) {
	p := validPayload()
	p["honeypot"] = "filled"
	p["website"] = 1.0

	res := Validate(p)
	require.True(t, res.Valid)
	assert.Equal(t, "filled", res.Data.Honeypot)
	assert.Equal(t, "1", res.Data.Website)
}

func TestValidate_Idempotent(t *testing.T) {
	raw := decode(t, `{"email":"A@B.co","message":"x  y\u0001z","formStartTime":"5"}`)

	first := Validate(raw)
	second := Validate(raw)
	require.True(t, first.Valid)
	assert.Equal(t, *first.Data, *second.Data)
}

func TestValidate_RoundTrip(t *testing.T) {
	bodies := []string{
		`{"email":" Someone@Example.org","message":"Need   a\tquote\n for a site","honeypot":"","formStartTime":"1700000000000"}`,
		`{"email":"a@b.co","message":"hello\u00a0\u00a0\u2003world\ufeff","formStartTime":"1"}`,
		`{"email":"a@b.co","message":"\u0001ok\u0002","formStartTime":1700000000000}`,
		`{"email":"a@b.co","message":"\u0001\u0002\u0003","formStartTime":"1"}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			first := Validate(decode(t, body))
			if !first.Valid {
				// Anything rejected must not have produced data
				assert.Nil(t, first.Data)
				return
			}
			assert.NotEmpty(t, first.Data.Message)

			// Through JSON, the way a resubmitted body would arrive
			encoded, err := json.Marshal(first.Data)
			require.NoError(t, err)
			second := Validate(decode(t, string(encoded)))
			require.True(t, second.Valid, "errors: %v", second.Errors)
			assert.Equal(t, *first.Data, *second.Data)

			third := Validate(first.Data.Payload())
			require.True(t, third.Valid, "errors: %v", third.Errors)
			assert.Equal(t, *first.Data, *third.Data)
		})
	}
}

func TestValidate_ControlOnlyMessageRejected(t *testing.T) {
	res := Validate(decode(t, `{"email":"a@b.co","message":"\u0001\u0002\u0003","formStartTime":"1"}`))

	assert.False(t, res.Valid)
	assert.Nil(t, res.Data)
	assert.Equal(t, []string{ErrMessageRequired}, res.Errors)
}

func TestValidate_CollapsesUnicodeSpaces(t *testing.T) {
	p := validPayload()
	p["message"] = "hello\u00a0\u00a0\u2003world"

	res := Validate(p)
	require.True(t, res.Valid)
	assert.Equal(t, "hello world", res.Data.Message)
}
