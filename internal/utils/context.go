// Package utils provides general-purpose helpers shared by the document
// server and the sync client: context keys, HMAC hashing of request bodies,
// JSON responses, the resty client wrapper and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDHeader carries the trace id between the sync client and the
// document server.
const TraceIDHeader = "X-Trace-ID"

// TraceIDCtxKey is the key used to store the request trace id.
var TraceIDCtxKey = contextKey("traceID")

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext retrieves the trace id stored by WithTraceID.
//
//	traceID, ok := utils.GetTraceIDFromContext(ctx)
//	if !ok {
//	    // request was not traced
//	}
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
