package middleware

import (
	"net/http"

	"github.com/google/uuid"

	id "siteadmin/pkg/domain"
	"siteadmin/pkg/requestcontext"
)

// RequestMeta stamps each request with a request ID and a request-scoped
// timestamp. Services read both through pkg/requestcontext, so a single
// request observes one consistent clock reading.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, now())

		// The front door forwards the alias it resolved the request through;
		// alias listings use it for presentation hints only.
		if aliasID, err := id.ParseAliasID(r.Header.Get("X-Request-Alias")); err == nil {
			ctx = requestcontext.WithRequestAliasID(ctx, aliasID)
		}

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
