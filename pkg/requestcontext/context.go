// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them without importing net/http.
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithPrivileged(ctx, true)
package requestcontext

import (
	"context"
	"time"

	id "siteadmin/pkg/domain"
)

type (
	requestIDKey    struct{}
	requestTimeKey  struct{}
	privilegedKey   struct{}
	requestAliasKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyRequestID    = requestIDKey{}
	ContextKeyRequestTime  = requestTimeKey{}
	ContextKeyPrivileged   = privilegedKey{}
	ContextKeyRequestAlias = requestAliasKey{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// Privileged reports whether the actor carries the platform-wide capability
// (as opposed to a single-tenant administrator). The core receives this as an
// already-resolved fact; no authorization policy lives here.
func Privileged(ctx context.Context) bool {
	if p, ok := ctx.Value(ContextKeyPrivileged).(bool); ok {
		return p
	}
	return false
}

// WithPrivileged marks the actor as holding the platform-wide capability.
func WithPrivileged(ctx context.Context, privileged bool) context.Context {
	return context.WithValue(ctx, ContextKeyPrivileged, privileged)
}

// RequestAliasID retrieves the alias the current request arrived on, when the
// front door resolved one. Used only for presentation hints in alias listings.
func RequestAliasID(ctx context.Context) id.AliasID {
	if aliasID, ok := ctx.Value(ContextKeyRequestAlias).(id.AliasID); ok {
		return aliasID
	}
	return id.AliasID{}
}

// WithRequestAliasID injects the request's resolved alias into the context.
func WithRequestAliasID(ctx context.Context, aliasID id.AliasID) context.Context {
	return context.WithValue(ctx, ContextKeyRequestAlias, aliasID)
}
