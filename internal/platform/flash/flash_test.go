package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteThenReadAndClear(t *testing.T) {
	writeRR := httptest.NewRecorder()
	Write(writeRR, Success("Adoption approved!"))

	cookie, err := http.ParseSetCookie(writeRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	readRR := httptest.NewRecorder()

	n, ok := ReadAndClear(readRR, req)
	if !ok {
		t.Fatalf("expected notice")
	}
	if n.Kind != KindSuccess || n.Message != "Adoption approved!" {
		t.Fatalf("unexpected notice %#v", n)
	}

	cleared, err := http.ParseSetCookie(readRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cleared.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got MaxAge=%d", cleared.MaxAge)
	}
}

func TestReadAndClear_InvalidValueStillClears(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	rr := httptest.NewRecorder()

	if _, ok := ReadAndClear(rr, req); ok {
		t.Fatalf("expected no notice")
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected clear Set-Cookie header")
	}
}

func TestWrite_IgnoresInvalidNotice(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, Notice{Kind: "weird", Message: "x"})
	Write(rr, Danger("   "))

	if rr.Header().Get("Set-Cookie") != "" {
		t.Fatalf("expected no cookie for invalid notices")
	}
}
