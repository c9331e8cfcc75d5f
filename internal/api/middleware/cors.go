package middleware

import (
	"net/http"
)

// CORS allows the browser game, served from another origin, to call the
// API. Allowed methods are filled in per route by mux.CORSMethodMiddleware.
// Preflight requests are always answered here; an empty origin only omits
// the Access-Control-Allow-Origin header.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setCORSHeaders(w, allowedOrigin)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSHeaders sets the same headers as CORS but always calls next.
// Used for unmatched requests, where OPTIONS must still get an error.
func CORSHeaders(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setCORSHeaders(w, allowedOrigin)
			next.ServeHTTP(w, r)
		})
	}
}

func setCORSHeaders(w http.ResponseWriter, allowedOrigin string) {
	if allowedOrigin == "" {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if allowedOrigin != "*" {
		w.Header().Add("Vary", "Origin")
	}
}
