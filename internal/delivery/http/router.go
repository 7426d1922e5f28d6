package http

import (
	"log/slog"
	"net/http"
	"strings"

	"roombooking/internal/delivery/http/controllers"
	"roombooking/internal/delivery/http/helpers"
	"roombooking/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

const fallbackPattern = "/"

// probeMethods are the methods tried when telling 404 from 405 apart.
var probeMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, healthController *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("PUT /event", eventController.CreateEvent)
	mux.HandleFunc("GET /event/for-week", eventController.GetEventsForWeek)
	mux.HandleFunc("GET /event/{date}", eventController.GetEventsByDate)

	mux.HandleFunc("GET /health", healthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc(fallbackPattern, unmatched(mux))

	return mux
}

// NewHandler wraps the router with the middleware chain: request logging outermost,
// then CORS, then panic recovery closest to the handlers.
func NewHandler(logger *slog.Logger, allowedOrigins []string, router http.Handler) http.Handler {
	return middleware.LoggingMiddleware(logger,
		middleware.CORS(allowedOrigins,
			middleware.Recovery(logger, router)))
}

// unmatched answers requests no route took: 405 with an Allow header when the path
// is routed for other methods, 404 otherwise.
func unmatched(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(mux, r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
			helpers.WriteJSONError(w, http.StatusMethodNotAllowed, helpers.ErrCodeMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
			return
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no route for "+r.Method+" "+r.URL.Path)
	}
}

func allowedMethods(mux *http.ServeMux, r *http.Request) []string {
	var allow []string
	for _, method := range probeMethods {
		if method == r.Method {
			continue
		}
		probe := r.Clone(r.Context())
		probe.Method = method
		if _, pattern := mux.Handler(probe); pattern != "" && pattern != fallbackPattern {
			allow = append(allow, method)
		}
	}
	return allow
}
