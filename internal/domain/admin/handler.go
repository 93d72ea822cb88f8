// Package admin arma las páginas de login y dashboard sobre el catálogo y las solicitudes.
package admin

import (
	"errors"
	"net/http"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/flash"
	"pet-adoption/internal/session"
	"pet-adoption/internal/web"

	"github.com/go-chi/chi/v5"
)

const dashboardPath = "/admin/dashboard"

// RequestRow es una solicitud pendiente con el nombre de su mascota ya resuelto.
type RequestRow struct {
	adoptions.Request
	PetName string
}

type DashboardData struct {
	Pets     []pets.Pet
	Requests []RequestRow
}

func RegisterRoutes(r chi.Router, gate *session.Gate, petSvc *pets.Service, adoptionSvc *adoptions.Service, deps web.Deps) {
	r.Get(session.LoginPath, loginPageHandler(gate, deps))
	r.Post(session.LoginPath, loginHandler(gate, deps))

	r.Group(func(ar chi.Router) {
		ar.Use(deps.RequireAdmin)
		ar.Get(dashboardPath, dashboardHandler(petSvc, adoptionSvc, deps))
		ar.Get("/admin/logout", logoutHandler(gate, deps))
	})
}

func loginPageHandler(gate *session.Gate, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ya logueado: directo al dashboard
		if token, ok := session.ReadCookie(r); ok {
			if _, err := gate.Require(r.Context(), token); err == nil {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}
		}
		deps.RenderOrFail(w, r, http.StatusOK, "login", web.Page{Title: "Admin login"})
	}
}

func loginHandler(gate *session.Gate, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			flash.Redirect(w, r, session.LoginPath, flash.Danger("Invalid credentials!"))
			return
		}

		token, s, err := gate.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			if errors.Is(err, session.ErrUnauthorized) {
				deps.Logger(r).Warn("admin login rejected", map[string]any{"remote": r.RemoteAddr})
				flash.Redirect(w, r, session.LoginPath, flash.Danger("Invalid credentials!"))
				return
			}
			deps.Logger(r).Error("admin login", map[string]any{"err": err})
			flash.Redirect(w, r, session.LoginPath, flash.Danger("internal error"))
			return
		}

		session.WriteCookie(w, r, token, gate.TTL())
		deps.Logger(r).Info("admin login", map[string]any{"session_id": s.ID, "username": s.Username})
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
	}
}

func dashboardHandler(petSvc *pets.Service, adoptionSvc *adoptions.Service, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allPets, err := petSvc.ListAll(r.Context())
		if err != nil {
			deps.Logger(r).Error("dashboard list pets", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		requests, err := adoptionSvc.List(r.Context())
		if err != nil {
			deps.Logger(r).Error("dashboard list requests", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		deps.RenderOrFail(w, r, http.StatusOK, "dashboard", web.Page{
			Title: "Dashboard",
			Admin: true,
			Data:  buildDashboard(allPets, requests),
		})
	}
}

func buildDashboard(allPets []pets.Pet, requests []adoptions.Request) DashboardData {
	names := make(map[string]string, len(allPets))
	for _, p := range allPets {
		names[p.ID] = p.Name
	}

	rows := make([]RequestRow, 0, len(requests))
	for _, req := range requests {
		rows = append(rows, RequestRow{Request: req, PetName: names[req.PetID]})
	}
	return DashboardData{Pets: allPets, Requests: rows}
}

func logoutHandler(gate *session.Gate, deps web.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := session.ReadCookie(r); ok {
			if err := gate.End(r.Context(), token); err != nil {
				deps.Logger(r).Error("end admin session", map[string]any{"err": err})
			}
		}
		session.ClearCookie(w, r)
		flash.Redirect(w, r, "/", flash.Success("Logged out."))
	}
}
