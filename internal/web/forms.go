package web

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/uploads"
)

// memoria máxima para partes multipart; el resto va a archivos temporales
const multipartMemory = 8 << 20

var ErrBodyTooLarge = errors.New("request body too large")

// ParseMultipart parsea el form. Un body que excede el límite devuelve ErrBodyTooLarge.
func ParseMultipart(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrBodyTooLarge
	}
	// form urlencoded sin archivos: seguimos con lo que haya parseado ParseForm
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// FormFile devuelve el adjunto del campo o nil si no vino (campo ausente o sin nombre).
// close siempre es seguro de llamar.
func FormFile(r *http.Request, field string) (*uploads.Attachment, func(), error) {
	noop := func() {}

	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if header == nil || strings.TrimSpace(header.Filename) == "" {
		_ = f.Close()
		return nil, noop, nil
	}

	return &uploads.Attachment{Filename: header.Filename, Content: f}, func() { closeFile(f) }, nil
}

func closeFile(f multipart.File) {
	_ = f.Close()
}

// FormValue recorta espacios; el resto de validaciones queda en los servicios.
func FormValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}
