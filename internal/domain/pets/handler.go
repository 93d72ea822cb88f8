package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/platform/flash"
	"pet-adoption/internal/platform/uploads"
	"pet-adoption/internal/web"

	"github.com/go-chi/chi/v5"
)

const dashboardPath = "/admin/dashboard"

func RegisterRoutes(r chi.Router, svc *Service, deps web.Deps) {
	// Galería pública
	r.Get("/", indexHandler(svc, deps))

	// Admin
	r.Group(func(ar chi.Router) {
		ar.Use(deps.RequireAdmin)
		ar.Post("/admin/add_pet", addPetHandler(svc, deps))
		ar.Post("/admin/remove_pet/{petID}", removePetHandler(svc, deps))
	})

	// API JSON de solo lectura
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, deps))
		pr.Get("/{petID}", getPetHandler(svc, deps))
	})
}

type petResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Breed          string    `json:"breed"`
	Photo          string    `json:"photo"`
	PhotoURL       string    `json:"photo_url"`
	MedicalHistory string    `json:"medical_history"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func indexHandler(svc *Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			deps.Logger(r).Error("list available pets", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		deps.RenderOrFail(w, r, http.StatusOK, "index", web.Page{Title: "Adopt a pet", Data: items})
	}
}

func addPetHandler(svc *Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := web.ParseMultipart(r); err != nil {
			if errors.Is(err, web.ErrBodyTooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			flash.Redirect(w, r, dashboardPath, flash.Danger("Invalid form."))
			return
		}

		photo, closePhoto, err := web.FormFile(r, "photo")
		if err != nil {
			flash.Redirect(w, r, dashboardPath, flash.Danger("Invalid photo upload."))
			return
		}
		defer closePhoto()

		p, err := svc.Add(r.Context(), AddInput{
			Name:           web.FormValue(r, "name"),
			Breed:          web.FormValue(r, "breed"),
			MedicalHistory: web.FormValue(r, "medical"),
			Photo:          photo,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				flash.Redirect(w, r, dashboardPath, flash.Danger("Pet name is required."))
			case errors.Is(err, uploads.ErrNoFileProvided):
				flash.Redirect(w, r, dashboardPath, flash.Danger("No file provided."))
			case errors.Is(err, uploads.ErrWrite):
				deps.Logger(r).Error("save pet photo", map[string]any{"err": err})
				flash.Redirect(w, r, dashboardPath, flash.Danger("Could not store the photo."))
			default:
				deps.Logger(r).Error("add pet", map[string]any{"err": err})
				flash.Redirect(w, r, dashboardPath, flash.Danger("internal error"))
			}
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.PetsAdded.Inc()
		}
		deps.Logger(r).Info("pet added", map[string]any{"pet_id": p.ID, "name": p.Name})
		flash.Redirect(w, r, dashboardPath, flash.Success("New pet added to the gallery!"))
	}
}

func removePetHandler(svc *Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		if err := svc.Remove(r.Context(), petID); err != nil {
			if errors.Is(err, ErrNotFound) {
				flash.Redirect(w, r, dashboardPath, flash.Danger("Pet not found."))
				return
			}
			deps.Logger(r).Error("remove pet", map[string]any{"pet_id": petID, "err": err})
			flash.Redirect(w, r, dashboardPath, flash.Danger("internal error"))
			return
		}

		deps.Logger(r).Info("pet removed", map[string]any{"pet_id": petID})
		flash.Redirect(w, r, dashboardPath, flash.Success("Pet removed."))
	}
}

// listPetsHandler godoc
// @Summary      List available pets
// @Tags         pets
// @Produce      json
// @Success      200  {array}   petResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/pets [get]
func listPetsHandler(svc *Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			deps.Logger(r).Error("list available pets", map[string]any{"err": err})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary      Get a pet
// @Tags         pets
// @Produce      json
// @Param        petID  path      string  true  "Pet ID"
// @Success      200    {object}  petResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/pets/{petID} [get]
func getPetHandler(svc *Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "pet not found"})
				return
			}
			deps.Logger(r).Error("get pet", map[string]any{"err": err})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:             p.ID,
		Name:           p.Name,
		Breed:          p.Breed,
		Photo:          p.Photo,
		MedicalHistory: p.MedicalHistory,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
	if p.Photo != "" {
		out.PhotoURL = "/uploads/" + p.Photo
	}
	return out
}

// writeJSON escribe v como JSON con el status dado.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
