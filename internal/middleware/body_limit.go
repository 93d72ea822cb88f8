package middleware

import "net/http"

// MaxBodySize rechaza con 413 todo request cuyo Content-Length declarado excede limit
// y corta el body en limit bytes para los que no lo declaran (chunked).
// Así ningún handler ve un upload sobredimensionado.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
