package uploads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":              "photo.jpg",
		"../../etc/passwd":       "etc_passwd",
		`..\..\windows\win.ini`:  "windows_win.ini",
		"my cat photo.png":       "my_cat_photo.png",
		"Café Crème.JPG":         "Cafe_Creme.JPG",
		"  .hidden  ":            "hidden",
		"../":                    fallbackName,
		"$$$.png":                "png",
		"id proof (copy) #2.pdf": "id_proof_copy_2.pdf",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStore_Save_WritesAndCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s := NewStore(dir)

	ref, err := s.Save(context.Background(), &Attachment{Filename: "../rex photo.jpg", Content: strings.NewReader("bytes")})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if ref != "rex_photo.jpg" {
		t.Fatalf("unexpected ref %q", ref)
	}

	b, err := os.ReadFile(filepath.Join(dir, ref))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(b) != "bytes" {
		t.Fatalf("unexpected content %q", string(b))
	}
}

func TestStore_Save_DoesNotOverwrite(t *testing.T) {
	s := NewStore(t.TempDir())

	first, err := s.Save(context.Background(), &Attachment{Filename: "id.png", Content: strings.NewReader("one")})
	if err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}
	second, err := s.Save(context.Background(), &Attachment{Filename: "id.png", Content: strings.NewReader("two")})
	if err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct refs, both %q", first)
	}
	if !strings.HasPrefix(second, "id-") || !strings.HasSuffix(second, ".png") {
		t.Fatalf("unexpected suffixed ref %q", second)
	}

	b, _ := os.ReadFile(s.Path(first))
	if string(b) != "one" {
		t.Fatalf("first file overwritten: %q", string(b))
	}
}

func TestStore_Save_NoFile(t *testing.T) {
	s := NewStore(t.TempDir())

	for _, att := range []*Attachment{nil, {Filename: "", Content: strings.NewReader("x")}, {Filename: "a.png"}} {
		if _, err := s.Save(context.Background(), att); !errors.Is(err, ErrNoFileProvided) {
			t.Fatalf("expected ErrNoFileProvided, got %v", err)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStore_Save_WriteErrorRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	_, err := s.Save(context.Background(), &Attachment{Filename: "x.bin", Content: failingReader{}})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no leftover files, got %d", len(entries))
	}
}

func TestStore_Save_DirIsAFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(blocker)
	_, err := s.Save(context.Background(), &Attachment{Filename: "a.png", Content: strings.NewReader("x")})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}
