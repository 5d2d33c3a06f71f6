package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/osa911/contactform/internal/api/constants"

	"github.com/gin-gonic/gin"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// DecodeContactBody decodes the preserved body into an untyped value so the
// form validator sees exactly what the client sent. A decode failure is
// stored rather than answered, since the pipeline reports it only after the
// rate limit check.
func DecodeContactBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw []byte
		if v, ok := c.Get(constants.ContextKeyRawBody); ok {
			raw, _ = v.([]byte)
		} else if c.Request.Body != nil {
			raw, _ = io.ReadAll(c.Request.Body)
		}

		body, err := decodeJSON(raw)
		if err != nil {
			c.Set(constants.ContextKeyBodyError, err)
		} else {
			c.Set(constants.ContextKeyContactBody, body)
		}

		c.Next()
	}
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return body, nil
}
