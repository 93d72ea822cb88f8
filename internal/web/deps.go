package web

import (
	"net/http"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
)

// Deps es lo que comparten los handlers HTML de todos los módulos.
type Deps struct {
	Render       *Renderer
	Log          logger.Logger
	Metrics      *metrics.Metrics
	RequireAdmin func(http.Handler) http.Handler
}

// Logger devuelve el logger del request (con request_id) o el base.
func (d Deps) Logger(r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), d.Log)
}

// RenderOrFail renderiza y, si el template falla, loguea y responde 500.
func (d Deps) RenderOrFail(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	if err := d.Render.Render(w, r, status, name, page); err != nil {
		d.Logger(r).Error("render failed", map[string]any{"page": name, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
