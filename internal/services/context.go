package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	rowKey   contextKey = "row"
	queryKey contextKey = "query"
)

// WithRunID annotates context with the run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRow annotates context with the row currently being filled.
func WithRow(ctx context.Context, row string) context.Context {
	if row == "" {
		return ctx
	}
	return context.WithValue(ctx, rowKey, row)
}

// RowFromContext returns the row name if present.
func RowFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(rowKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithQuery annotates context with the search term being explored.
func WithQuery(ctx context.Context, query string) context.Context {
	if query == "" {
		return ctx
	}
	return context.WithValue(ctx, queryKey, query)
}

// QueryFromContext returns the search term if present.
func QueryFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(queryKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
