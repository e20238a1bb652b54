package httpkit

import (
	"net/http"

	"inkverse/internal/platform/net/middleware"
)

// CommonStack is the API scope stack: the platform defaults, CORS, then bearer capture
// handlers behind it can read the caller's token with pnet.Bearer
func CommonStack(cors middleware.CORSOptions) []func(http.Handler) http.Handler {
	mw := middleware.Defaults()
	return append(mw,
		middleware.CORS(cors),
		middleware.StripSlashes(),
		middleware.Bearer,
	)
}
