package logging

import "context"

type contextKey string

const (
	categoryKey  contextKey = "category"
	operationKey contextKey = "operation"
)

// WithCategory adds a notification category to the context.
func WithCategory(ctx context.Context, category string) context.Context {
	return context.WithValue(ctx, categoryKey, category)
}

// WithOperation adds the name of the running facade operation to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// GetCategory retrieves the notification category from the context.
// Returns empty string if not present.
func GetCategory(ctx context.Context) string {
	if c, ok := ctx.Value(categoryKey).(string); ok {
		return c
	}
	return ""
}

// GetOperation retrieves the operation name from the context.
// Returns empty string if not present.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}
