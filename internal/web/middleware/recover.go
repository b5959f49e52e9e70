package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/fieldserv/openorders/internal/logging"
)

// Recoverer converts a panic during request handling into a 500 with a
// JSON error body. The panic value and stack are logged server-side;
// the client only ever sees a generic message.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(r.Context()).Error("panic recovered",
					"path", r.URL.Path,
					"panic", fmt.Sprintf("%v", rec),
					"stack", string(debug.Stack()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"error":"internal server error"}`)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
