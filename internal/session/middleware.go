package session

import (
	"errors"
	"net/http"
)

// LoginPath es a donde se redirige cualquier acceso admin sin sesión.
const LoginPath = "/admin/login"

// RequireAdmin corta el request antes del handler si no hay sesión válida:
// redirect 303 a login, sin ejecutar nada del handler protegido.
func RequireAdmin(g *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := ReadCookie(r)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			s, err := g.Require(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					ClearCookie(w, r)
					http.Redirect(w, r, LoginPath, http.StatusSeeOther)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
