package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// SubjectCtxKey holds the authenticated API client name.
	SubjectCtxKey = contextKey("subject")

	// TraceIDCtxKey holds the request trace id.
	TraceIDCtxKey = contextKey("traceID")
)

// GetSubjectFromContext returns the client name set by the auth middleware.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok && subject != ""
}

// GetTraceIDFromContext returns the trace id set by the trace middleware.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok && id != ""
}
