package web

import (
	"net/http"

	"care-compliance/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) registerDaycareRoutes(r chi.Router) {
	r.Route("/daycare", func(r chi.Router) {
		r.Post("/classrooms", h.CreateClassroom)
		r.Post("/classrooms/{id}/headcounts", h.RecordHeadcount)
		r.Post("/credentials", h.CreateCredential)
		r.Post("/compliance/items", h.CreateComplianceItem)
		r.Post("/compliance/items/{id}/evidence", h.AddEvidence)
		r.Get("/dashboard", h.DaycareDashboard)
		r.Get("/report.xlsx", h.DaycareReport)
		r.Get("/alerts/digest", h.AlertDigest)
		r.Post("/alerts/send", h.SendAlerts)
	})
}

func (h *Handler) CreateClassroom(w http.ResponseWriter, r *http.Request) {
	var in service.CreateClassroomInput
	if !decode(w, r, &in) {
		return
	}
	classroom, err := h.daycareService.CreateClassroom(r.Context(), organization(r.Context()), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, classroom)
}

func (h *Handler) RecordHeadcount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.RecordHeadcountInput
	if !decode(w, r, &in) {
		return
	}
	headcount, err := h.daycareService.RecordHeadcount(r.Context(), organization(r.Context()), id, in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, headcount)
}

func (h *Handler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StaffID        uuid.UUID `json:"staff_id"`
		Name           string    `json:"name"`
		CredentialType string    `json:"credential_type"`
		IssuedOn       *date     `json:"issued_on"`
		ExpirationDate *date     `json:"expiration_date"`
	}
	if !decode(w, r, &payload) {
		return
	}

	credential, err := h.daycareService.CreateCredential(r.Context(), organization(r.Context()), service.CreateCredentialInput{
		StaffID:        payload.StaffID,
		Name:           payload.Name,
		CredentialType: payload.CredentialType,
		IssuedOn:       payload.IssuedOn.ptr(),
		ExpirationDate: payload.ExpirationDate.ptr(),
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, credential)
}

func (h *Handler) CreateComplianceItem(w http.ResponseWriter, r *http.Request) {
	var in service.CreateComplianceItemInput
	if !decode(w, r, &in) {
		return
	}
	item, err := h.daycareService.CreateComplianceItem(r.Context(), organization(r.Context()), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, item)
}

func (h *Handler) AddEvidence(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Status         string     `json:"status"`
		DocumentURL    string     `json:"document_url"`
		ExpirationDate *date      `json:"expiration_date"`
		ReviewedBy     *uuid.UUID `json:"reviewed_by"`
	}
	if !decode(w, r, &payload) {
		return
	}

	evidence, err := h.daycareService.AddEvidence(r.Context(), organization(r.Context()), id, service.AddEvidenceInput{
		Status:         payload.Status,
		DocumentURL:    payload.DocumentURL,
		ExpirationDate: payload.ExpirationDate.ptr(),
		ReviewedBy:     payload.ReviewedBy,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, evidence)
}

func (h *Handler) DaycareDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.daycareService.Dashboard(r.Context(), organization(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, dashboard)
}

func (h *Handler) DaycareReport(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.DaycareWorkbook(r.Context(), organization(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	xlsx(w, "daycare-"+h.clock().Format(dateLayout)+".xlsx", data)
}

func (h *Handler) AlertDigest(w http.ResponseWriter, r *http.Request) {
	text, err := h.alertService.Digest(r.Context(), organization(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, map[string]string{"digest": text})
}

func (h *Handler) SendAlerts(w http.ResponseWriter, r *http.Request) {
	if err := h.alertService.Send(r.Context(), organization(r.Context())); err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusAccepted, map[string]string{"status": "sent"})
}
