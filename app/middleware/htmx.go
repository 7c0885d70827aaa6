package middleware

import (
	"context"
	"net/http"
)

type htmxKey struct{}

// HTMX marks requests coming from htmx so handlers can answer with fragments
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := context.WithValue(r.Context(), htmxKey{}, is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsHTMX reports whether the request was issued by htmx
func IsHTMX(ctx context.Context) bool {
	is, _ := ctx.Value(htmxKey{}).(bool)
	return is
}
