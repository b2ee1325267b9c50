package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"artmarket-admin/internal/api/respond"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// sanitize strips markup from every string in a decoded JSON value,
// descending into objects and arrays.
func sanitize(v any) any {
	switch t := v.(type) {
	case string:
		return strictPolicy.Sanitize(t)
	case map[string]any:
		for k, inner := range t {
			t[k] = sanitize(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = sanitize(inner)
		}
		return t
	default:
		return v
	}
}

// SanitizeAndCleanInputMiddleware cleans string fields of JSON bodies.
// Non-JSON bodies (multipart uploads, webhooks) pass through untouched.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respond.Fail(c, http.StatusBadRequest, "Invalid body")
			c.Abort()
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body any
		if err := dec.Decode(&body); err != nil {
			respond.Fail(c, http.StatusBadRequest, "Malformed JSON")
			c.Abort()
			return
		}

		newBody, err := json.Marshal(sanitize(body))
		if err != nil {
			respond.Fail(c, http.StatusBadRequest, "Malformed JSON")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}
