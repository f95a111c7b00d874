// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for creation routes. The
// validator checks the header shape, stashes the key and, when a lookup is
// configured, records the id of a resource created earlier under the same
// (scope, key) so the handler can replay it instead of writing again.
package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed marks a response served from a previous request.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // int64 resource id
)

// MsgInvalidIdempotencyKey is the 400 body message for a malformed key.
const MsgInvalidIdempotencyKey = "invalid Idempotency-Key"

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil uses ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyLookup resolves the resource recorded for (scope, key). TTL
// enforcement belongs to the implementation.
type IdempotencyLookup func(ctx context.Context, scope, key string) (resourceID int64, found bool, err error)

// Scope identifies the route a key belongs to: method and URL path.
func Scope(c *gin.Context) string {
	return c.Request.Method + " " + c.Request.URL.Path
}

// GetIdempotencyKey returns the validated key, if any.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, _ := c.Get(ctxKeyIdemKey)
	s, _ := v.(string)
	return s, s != ""
}

// ReplayOf returns the resource id recorded for this request's scope and key.
func ReplayOf(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// IdempotencyValidator validates Idempotency-Key on POST requests.
//
//   - No header, or a safe method: no-op.
//   - Malformed header: 400 {"msg": "invalid Idempotency-Key"}.
//   - Lookup hit: the recorded resource id is available via ReplayOf.
//
// Lookup failures are logged and the request proceeds as a first attempt.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": MsgInvalidIdempotencyKey})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			id, found, err := lookup(c.Request.Context(), Scope(c), key)
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			case found:
				c.Set(ctxKeyIdemReplay, id)
			}
		}

		c.Next()
	}
}
