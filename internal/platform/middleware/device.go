package middleware

import (
	"fmt"
	"net/http"

	"github.com/mssola/useragent"

	"courze/pkg/requestcontext"
)

// ClientPlatform parses the User-Agent header into a short platform
// description ("Chrome 120 / Linux") and stores it in the request context.
// The ledger attaches it to emitted events so reconciliation can tell which
// client reported a given progress update.
func ClientPlatform(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		if ua == "" {
			next.ServeHTTP(w, r)
			return
		}

		parsed := useragent.New(ua)
		name, version := parsed.Browser()
		platform := fmt.Sprintf("%s %s / %s", name, version, parsed.OS())
		ctx := requestcontext.WithClientPlatform(r.Context(), platform)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
