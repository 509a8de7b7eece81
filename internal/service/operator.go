package service

import "context"

type operatorKey struct{}

// WithOperator returns a context carrying the authenticated operator id.
func WithOperator(ctx context.Context, operatorID int) context.Context {
	return context.WithValue(ctx, operatorKey{}, operatorID)
}

// OperatorFrom returns the operator id stored by WithOperator.
func OperatorFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(operatorKey{}).(int)
	return id, ok && id > 0
}
