package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/puzzle-progress/internal/api/apierr"
	"github.com/mcoot/puzzle-progress/internal/api/handler"
	"github.com/mcoot/puzzle-progress/internal/api/middleware"
	"github.com/mcoot/puzzle-progress/internal/services/progress"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	ProgressService progress.ServiceInterface
	// AllowedOrigin is sent as Access-Control-Allow-Origin; empty disables CORS
	AllowedOrigin string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// r.Use only wraps matched routes, so the fallbacks get their own chain
	unmatched := func(h http.HandlerFunc) http.Handler {
		return middleware.Recovery(cfg.Logger)(
			middleware.Logging(cfg.Logger)(
				middleware.CORSHeaders(cfg.AllowedOrigin)(h)))
	}
	r.NotFoundHandler = unmatched(notFoundHandler)
	r.MethodNotAllowedHandler = unmatched(methodNotAllowedHandler)

	progressHandler := handler.NewProgressHandler(cfg.ProgressService)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(mux.CORSMethodMiddleware(r))
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// OPTIONS is matched on every route so preflight requests reach the
	// CORS middleware, which answers them without calling the handler
	r.HandleFunc("/time", progressHandler.Time).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/progress", progressHandler.GetProgress).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/progress", progressHandler.SetProgress).Methods(http.MethodPost)
	r.HandleFunc("/uuid", progressHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/clear_table", progressHandler.ClearTable).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/health", progressHandler.Health).Methods(http.MethodGet, http.MethodOptions)

	return r
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}
