package adoptions

import (
	"errors"
	"fmt"
	"net/http"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/flash"
	"pet-adoption/internal/platform/uploads"
	"pet-adoption/internal/web"

	"github.com/go-chi/chi/v5"
)

const dashboardPath = "/admin/dashboard"

// ProofFiles resuelve la referencia guardada de un documento de identidad a su archivo.
type ProofFiles interface {
	Path(ref string) string
}

// AdoptPage es el Data de la página de una mascota.
type AdoptPage struct {
	Pet     pets.Pet
	Pending int
}

// RegisterRoutes monta el formulario público, la aprobación y los documentos (admin).
// petLookup es el catálogo; se usa solo para renderizar la página de la mascota.
func RegisterRoutes(r chi.Router, svc *Service, petLookup PetLookup, proofs ProofFiles, deps web.Deps) {
	r.Get("/adopt/{petID}", adoptPageHandler(svc, petLookup, deps))
	r.Post("/adopt/{petID}", submitHandler(svc, petLookup, deps))

	r.Group(func(ar chi.Router) {
		ar.Use(deps.RequireAdmin)
		ar.Get("/admin/approve/{requestID}", approveHandler(svc, deps))
		ar.Get("/admin/id_proofs/{requestID}", idProofHandler(svc, proofs, deps))
	})
}

func adoptPageHandler(svc *Service, petLookup PetLookup, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := petLookup.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				deps.RenderOrFail(w, r, http.StatusNotFound, "notfound", web.Page{Title: "Not found", Data: "Pet not found."})
				return
			}
			deps.Logger(r).Error("get pet", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		pending, err := svc.ListByPet(r.Context(), p.ID)
		if err != nil {
			deps.Logger(r).Error("list requests by pet", map[string]any{"pet_id": p.ID, "err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		deps.RenderOrFail(w, r, http.StatusOK, "adopt", web.Page{
			Title: "Adopt " + p.Name,
			Data:  AdoptPage{Pet: p, Pending: len(pending)},
		})
	}
}

// idProofHandler sirve el documento de una solicitud pendiente. Se busca por id de
// solicitud, nunca por nombre de archivo.
func idProofHandler(svc *Service, proofs ProofFiles, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			deps.Logger(r).Error("get adoption request", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if req.IDProof == "" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", "private, no-store")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeFile(w, r, proofs.Path(req.IDProof))
	}
}

func submitHandler(svc *Service, petLookup PetLookup, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		back := "/adopt/" + petID

		if err := web.ParseMultipart(r); err != nil {
			if errors.Is(err, web.ErrBodyTooLarge) {
				countApplication(deps, "too_large")
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			countApplication(deps, "invalid_form")
			flash.Redirect(w, r, back, flash.Danger("Invalid form."))
			return
		}

		proof, closeProof, err := web.FormFile(r, "id_proof")
		if err != nil {
			countApplication(deps, "invalid_form")
			flash.Redirect(w, r, back, flash.Danger("Invalid ID proof upload."))
			return
		}
		defer closeProof()

		req, err := svc.Submit(r.Context(), SubmitInput{
			PetID:       petID,
			AdopterName: web.FormValue(r, "name"),
			Email:       web.FormValue(r, "email"),
			IDProof:     proof,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidEmail):
				countApplication(deps, "invalid_email")
				flash.Redirect(w, r, back, flash.Danger("Invalid email! Please use an authentic address like @gmail.com."))
			case errors.Is(err, ErrPetNotFound):
				countApplication(deps, "pet_not_found")
				flash.Redirect(w, r, "/", flash.Danger("Pet not found."))
			case errors.Is(err, ErrPetNotAvailable):
				countApplication(deps, "pet_not_available")
				flash.Redirect(w, r, back, flash.Danger("This pet has already been adopted."))
			case errors.Is(err, uploads.ErrNoFileProvided):
				countApplication(deps, "no_file")
				flash.Redirect(w, r, back, flash.Danger("No file provided."))
			case errors.Is(err, uploads.ErrWrite):
				countApplication(deps, "error")
				deps.Logger(r).Error("save id proof", map[string]any{"pet_id": petID, "err": err})
				flash.Redirect(w, r, back, flash.Danger("Could not store the ID proof."))
			default:
				countApplication(deps, "error")
				deps.Logger(r).Error("submit application", map[string]any{"pet_id": petID, "err": err})
				flash.Redirect(w, r, back, flash.Danger("internal error"))
			}
			return
		}

		countApplication(deps, "submitted")
		deps.Logger(r).Info("application submitted", map[string]any{"adoption_request_id": req.ID, "pet_id": req.PetID})

		// solo para el mensaje; si la mascota ya no está usamos el id
		petName := req.PetID
		if p, err := petLookup.GetByID(r.Context(), req.PetID); err == nil {
			petName = p.Name
		}
		flash.Redirect(w, r, "/", flash.Success(fmt.Sprintf("Application for %s submitted! We will review your ID.", petName)))
	}
}

// approveHandler siempre vuelve al dashboard. Id desconocido o ya consumido: sin aviso.
func approveHandler(svc *Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := chi.URLParam(r, "requestID")

		res, err := svc.Approve(r.Context(), requestID)
		if err != nil {
			deps.Logger(r).Error("approve request", map[string]any{"adoption_request_id": requestID, "err": err})
			flash.Redirect(w, r, dashboardPath, flash.Danger("internal error"))
			return
		}

		if !res.Applied {
			countApproval(deps, "noop")
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}

		countApproval(deps, "applied")
		deps.Logger(r).Info("adoption approved", map[string]any{"adoption_request_id": res.RequestID, "pet_id": res.PetID})
		flash.Redirect(w, r, dashboardPath, flash.Success("Adoption approved!"))
	}
}

func countApplication(deps web.Deps, outcome string) {
	if deps.Metrics != nil {
		deps.Metrics.Applications.WithLabelValues(outcome).Inc()
	}
}

func countApproval(deps web.Deps, result string) {
	if deps.Metrics != nil {
		deps.Metrics.Approvals.WithLabelValues(result).Inc()
	}
}
