package middleware

import (
	"log/slog"
	"net/http"

	"siteadmin/pkg/requestcontext"
)

// RequireAdminToken gates the administrative surface. The admin token admits
// tenant administrators; the host token additionally marks the actor as
// privileged in the request context. Authorization policy beyond this token
// check lives outside the service.
func RequireAdminToken(adminToken, hostToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			ctx := r.Context()

			switch {
			case hostToken != "" && token == hostToken:
				ctx = requestcontext.WithPrivileged(ctx, true)
			case token == adminToken:
				// tenant administrator, not privileged
			default:
				logger.WarnContext(ctx, "rejected admin request",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePrivileged rejects requests whose actor does not carry the
// platform-wide capability. Applied to alias management and URL-mapping
// routes, mirroring the operator-only scope of those settings.
func RequirePrivileged(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.Privileged(ctx) {
				logger.WarnContext(ctx, "rejected non-privileged request",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
