package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrNoFileProvided = errors.New("no file provided")
	ErrWrite          = errors.New("upload write failed")
)

const fallbackName = "upload"

// Attachment es un archivo recibido del cliente. nil = no vino archivo.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// Store guarda adjuntos en un directorio local. El nombre sanitizado es la referencia
// que se persiste en la base.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

func (s *Store) Dir() string { return s.dir }

// Save escribe el adjunto en dir/<nombre sanitizado> y devuelve ese nombre.
// Si ya existe un archivo con ese nombre se agrega un sufijo corto antes de la extensión.
func (s *Store) Save(ctx context.Context, att *Attachment) (string, error) {
	if att == nil || att.Content == nil || strings.TrimSpace(att.Filename) == "" {
		return "", ErrNoFileProvided
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create dir: %v", ErrWrite, err)
	}

	name := SanitizeFilename(att.Filename)
	f, name, err := s.create(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	_, copyErr := io.Copy(f, att.Content)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("%w: %v", ErrWrite, errors.Join(copyErr, closeErr))
	}

	return name, nil
}

// Path devuelve la ruta absoluta/relativa de una referencia ya guardada.
func (s *Store) Path(ref string) string {
	return filepath.Join(s.dir, filepath.Base(ref))
}

func (s *Store) create(name string) (*os.File, string, error) {
	candidate := name
	for attempt := 0; attempt < 5; attempt++ {
		f, err := os.OpenFile(filepath.Join(s.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
		candidate = withSuffix(name, uuid.NewString()[:8])
	}
	return nil, "", fmt.Errorf("could not allocate unique name for %q", name)
}

func withSuffix(name, suffix string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "-" + suffix + ext
}

// SanitizeFilename deja solo [A-Za-z0-9_.-]: normaliza a ASCII, elimina separadores de
// directorio (no hay path traversal posible) y une palabras con "_".
func SanitizeFilename(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	ascii, _, err := transform.String(t, name)
	if err != nil {
		ascii = name
	}

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")

	var b strings.Builder
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return fallbackName
	}
	return out
}
