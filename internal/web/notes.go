package web

import (
	"net/http"

	"care-compliance/internal/models"
	"care-compliance/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// registerNoteRoutes is mounted under /therapy.
func (h *Handler) registerNoteRoutes(r chi.Router) {
	r.Post("/sessions/{id}/note", h.CreateNote)
	r.Post("/sessions/{id}/note/suggest", h.SuggestNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Post("/notes/{id}/sign", h.SignNote)
	r.Post("/notes/{id}/lock", h.LockNote)
	r.Post("/notes/{id}/amend", h.AmendNote)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r)
	if !ok {
		return
	}
	var content service.NoteContent
	if !decode(w, r, &content) {
		return
	}
	note, err := h.noteService.CreateDraft(r.Context(), organization(r.Context()), sessionID, content)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusCreated, note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var content service.NoteContent
	if !decode(w, r, &content) {
		return
	}
	note, err := h.noteService.Update(r.Context(), organization(r.Context()), id, content)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, note)
}

func (h *Handler) SignNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		SignerID uuid.UUID `json:"signer_id" validate:"required"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if err := service.Validate(payload); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.noteResult(w, r)(h.noteService.Sign(r.Context(), organization(r.Context()), id, payload.SignerID))
}

func (h *Handler) LockNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.noteResult(w, r)(h.noteService.Lock(r.Context(), organization(r.Context()), id))
}

func (h *Handler) AmendNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.noteResult(w, r)(h.noteService.Amend(r.Context(), organization(r.Context()), id))
}

func (h *Handler) noteResult(w http.ResponseWriter, r *http.Request) func(*models.SoapNote, error) {
	return func(note *models.SoapNote, err error) {
		if err != nil {
			h.serviceError(w, r, err)
			return
		}
		success(w, r, http.StatusOK, note)
	}
}

// SuggestNote always answers 200 with a suggestion once the session exists;
// completion failures show up as warnings in the body.
func (h *Handler) SuggestNote(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.SuggestInput
	if r.ContentLength != 0 && !decode(w, r, &in) {
		return
	}
	suggestion, err := h.noteService.Suggest(r.Context(), organization(r.Context()), sessionID, in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	success(w, r, http.StatusOK, suggestion)
}
