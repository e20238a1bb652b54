package middleware

import (
	"net/http"
	"runtime/debug"

	perr "inkverse/internal/platform/errors"
	"inkverse/internal/platform/logger"
	pnet "inkverse/internal/platform/net"
	phttp "inkverse/internal/platform/net/http"
)

// RecoverJSON turns a panic into a JSON 500 and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, env := phttp.ErrorEnvelope(perr.PanicErrf("internal error"), pnet.RequestID(r.Context()))
			phttp.JSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
