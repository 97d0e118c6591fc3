package web

import (
	"net/http"

	"care-compliance/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) registerRosterRoutes(r chi.Router) {
	r.Get("/organization", h.GetOrganization)
	r.Get("/staff", h.ListStaff)
	r.Post("/staff", h.CreateStaff)
	r.Get("/students", h.ListStudents)
	r.Post("/students", h.CreateStudent)
}

// CreateOrganization registers a tenant. The returned id is the value of the
// organization header for every other call.
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var in service.CreateOrganizationInput
	if !decode(w, r, &in) {
		return
	}
	org, err := h.rosterService.CreateOrganization(r.Context(), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, org)
}

func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.rosterService.GetOrganization(r.Context(), organization(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, org)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var in service.CreateStaffInput
	if !decode(w, r, &in) {
		return
	}
	staff, err := h.rosterService.CreateStaff(r.Context(), organization(r.Context()), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, staff)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.rosterService.ListStaff(r.Context(), organization(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, staff)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var in service.CreateStudentInput
	if !decode(w, r, &in) {
		return
	}
	student, err := h.rosterService.CreateStudent(r.Context(), organization(r.Context()), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, student)
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.rosterService.ListStudents(r.Context(), organization(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, students)
}
