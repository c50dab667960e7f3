package ctxutil

import "context"

type ctxKey string

const (
	operatorKey  ctxKey = "operator"
	requestIDKey ctxKey = "request_id"
)

// WithOperator stores the authenticated operator's subject in the context.
func WithOperator(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, operatorKey, subject)
}

// OperatorFromCtx extracts the operator subject from the context.
// Returns "" and false if the value is missing, empty, or of the wrong type.
func OperatorFromCtx(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(operatorKey).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
