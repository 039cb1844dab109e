package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context. A chat turn enriches its context once (slug,
// assistant, thread, run) and every log line below picks the fields up
// without threading them through call signatures.
type LogFields struct {
	CompanySlug *string // Directory slug the request resolved
	AssistantID *string // External assistant identifier
	ThreadID    *string // External conversation thread identifier
	RunID       *string // External run identifier being polled
	Component   string  // Component name (e.g., "relay.chat", "relay.directory")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.CompanySlug != nil {
		result.CompanySlug = next.CompanySlug
	}
	if next.AssistantID != nil {
		result.AssistantID = next.AssistantID
	}
	if next.ThreadID != nil {
		result.ThreadID = next.ThreadID
	}
	if next.RunID != nil {
		result.RunID = next.RunID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{ThreadID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like chat messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
