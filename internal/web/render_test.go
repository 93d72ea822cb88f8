package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption/internal/platform/flash"
)

func TestRender_ShowsAndConsumesFlash(t *testing.T) {
	rd := newTestRenderer(t)

	setRR := httptest.NewRecorder()
	flash.Write(setRR, flash.Danger("Invalid credentials!"))
	cookie, err := http.ParseSetCookie(setRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()

	if err := rd.Render(rr, req, http.StatusOK, "login", Page{Title: "Login"}); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "Invalid credentials!") {
		t.Fatalf("expected flash message in body:\n%s", body)
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), flash.CookieName+"=") {
		t.Fatalf("expected flash cookie to be cleared")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	rd := newTestRenderer(t)
	rr := httptest.NewRecorder()
	err := rd.Render(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "nope", Page{})
	if err == nil {
		t.Fatalf("expected error for unknown page")
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	rd, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return rd
}
