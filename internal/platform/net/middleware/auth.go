package middleware

import (
	"net/http"

	pnet "inkverse/internal/platform/net"
	phttp "inkverse/internal/platform/net/http"
)

// Bearer stores the Authorization bearer token on the context
// Requests without one stay anonymous; a malformed header is rejected with 401
func Bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := pnet.ParseBearer(r.Header.Get("Authorization"))
		if err != nil {
			status, env := phttp.ErrorEnvelope(err, pnet.RequestID(r.Context()))
			phttp.JSON(w, status, env)
			return
		}
		next.ServeHTTP(w, r.WithContext(pnet.WithBearer(r.Context(), token)))
	})
}
