package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"roombooking/internal/delivery/http/helpers"
)

// Recovery turns a panicking handler into a 500 JSON error and logs the stack.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestID, _ := RequestIDFromContext(r.Context())
			logger.ErrorContext(r.Context(), "panic recovered",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
