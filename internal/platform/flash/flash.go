// Package flash guarda un aviso de un solo uso en cookie para mostrarlo después de un redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

const CookieName = "flash"

type Kind string

const (
	KindSuccess Kind = "success"
	KindDanger  Kind = "danger"
	KindInfo    Kind = "info"
)

type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Danger(msg string) Notice  { return Notice{Kind: KindDanger, Message: msg} }

// Write deja el aviso para el próximo render. Avisos inválidos se ignoran.
func Write(w http.ResponseWriter, n Notice) {
	n, ok := normalize(n)
	if !ok {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear consume el aviso: siempre expira la cookie, aunque sea inválida.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c == nil {
		return Notice{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(c.Value))
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil {
		return Notice{}, false
	}
	return normalize(n)
}

// Redirect es el camino estándar de error/éxito: aviso + 303 a la página de origen.
func Redirect(w http.ResponseWriter, r *http.Request, to string, n Notice) {
	Write(w, n)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func normalize(n Notice) (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindDanger, KindInfo:
		return n, true
	default:
		return Notice{}, false
	}
}
