package utils

// contextKey is a type used for context keys to avoid conflicts with other packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// TraceIdKey is the context key of the per-request trace id.
var TraceIdKey = &contextKey{"traceId"}

// BrowserSessionKey is the context key of the browser session id of a request.
var BrowserSessionKey = &contextKey{"browserSession"}

// SanitizedPayloadKey is the context key of the validated and sanitized request body.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}
