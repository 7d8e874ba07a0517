package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// routePath names the request by its matched route template, so path parameters
// stay out of logs and span names. Unrouted requests fall back to the raw path.
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}
