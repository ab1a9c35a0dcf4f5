package core

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	identityKey contextKey = iota
	reportKey
)

// WithIdentity stores the identity of an accepted token in ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom retrieves the identity stored by WithIdentity.
//
// Example usage:
//
//	id, err := core.IdentityFrom(r.Context())
//	if err != nil {
//	    return err
//	}
func IdentityFrom(ctx context.Context) (*Identity, error) {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok || id == nil {
		return nil, ErrIdentityNotFound
	}
	return id, nil
}

// WithReport stores a validation report in ctx.
func WithReport(ctx context.Context, r *Report) context.Context {
	return context.WithValue(ctx, reportKey, r)
}

// ReportFrom retrieves the report stored by WithReport.
func ReportFrom(ctx context.Context) (*Report, bool) {
	r, ok := ctx.Value(reportKey).(*Report)
	return r, ok && r != nil
}
