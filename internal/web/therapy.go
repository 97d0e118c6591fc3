package web

import (
	"net/http"

	"care-compliance/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) registerTherapyRoutes(r chi.Router) {
	r.Route("/therapy", func(r chi.Router) {
		r.Get("/sessions", h.ListSessions)
		r.Post("/sessions", h.CreateSession)
		r.Put("/sessions/{id}/attendance", h.UpdateAttendance)
		r.Get("/dashboard", h.TherapyDashboard)
		r.Get("/report.xlsx", h.TherapyReport)
		r.Post("/goals", h.CreateGoal)
		r.Post("/goals/{id}/progress", h.RecordProgress)
		h.registerNoteRoutes(r)
	})
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	p, err := h.period(r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_period", err.Error())
		return
	}
	sessions, err := h.therapyService.ListSessions(r.Context(), organization(r.Context()), p)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, sessions)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StudentID        uuid.UUID `json:"student_id"`
		TherapistID      uuid.UUID `json:"therapist_id"`
		SessionDate      date      `json:"session_date"`
		AttendanceStatus string    `json:"attendance_status"`
		DurationMinutes  int       `json:"duration_minutes"`
	}
	if !decode(w, r, &payload) {
		return
	}

	session, err := h.therapyService.CreateSession(r.Context(), organization(r.Context()), service.CreateSessionInput{
		StudentID:        payload.StudentID,
		TherapistID:      payload.TherapistID,
		SessionDate:      payload.SessionDate.Time,
		AttendanceStatus: payload.AttendanceStatus,
		DurationMinutes:  payload.DurationMinutes,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, session)
}

func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		AttendanceStatus string `json:"attendance_status"`
	}
	if !decode(w, r, &payload) {
		return
	}

	if err := h.therapyService.UpdateAttendance(r.Context(), organization(r.Context()), id, payload.AttendanceStatus); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TherapyDashboard(w http.ResponseWriter, r *http.Request) {
	p, err := h.period(r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_period", err.Error())
		return
	}
	dashboard, err := h.therapyService.Dashboard(r.Context(), organization(r.Context()), p)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, dashboard)
}

func (h *Handler) TherapyReport(w http.ResponseWriter, r *http.Request) {
	p, err := h.period(r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_period", err.Error())
		return
	}
	data, err := h.reportService.TherapyWorkbook(r.Context(), organization(r.Context()), p)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	xlsx(w, "therapy-"+p.From.Format(dateLayout)+".xlsx", data)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var in service.CreateGoalInput
	if !decode(w, r, &in) {
		return
	}
	goal, err := h.therapyService.CreateGoal(r.Context(), organization(r.Context()), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, goal)
}

func (h *Handler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		SessionID  *uuid.UUID `json:"session_id"`
		RecordedOn date       `json:"recorded_on"`
		Value      float64    `json:"value"`
	}
	if !decode(w, r, &payload) {
		return
	}

	progress, err := h.therapyService.RecordProgress(r.Context(), organization(r.Context()), id, service.RecordProgressInput{
		SessionID:  payload.SessionID,
		RecordedOn: payload.RecordedOn.Time,
		Value:      payload.Value,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, progress)
}
