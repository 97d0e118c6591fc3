package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"care-compliance/internal/repository"
	"care-compliance/internal/service"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type envelope struct {
	Data      any       `json:"data,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	body.RequestID = middleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func success(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, envelope{Data: data})
}

func fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, envelope{Error: &apiError{Code: code, Message: message}})
}

func xlsx(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// serviceError maps service and repository errors onto HTTP responses.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, r, http.StatusBadRequest, envelope{Error: &apiError{
			Code:    "validation_failed",
			Message: "request has invalid fields",
			Fields:  verr.Fields,
		}})
	case errors.Is(err, service.ErrValidation):
		fail(w, r, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		fail(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		fail(w, r, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, service.ErrNoteNotEditable):
		fail(w, r, http.StatusConflict, "note_not_editable", err.Error())
	case errors.Is(err, service.ErrNoteIncomplete):
		fail(w, r, http.StatusConflict, "note_incomplete", err.Error())
	case errors.Is(err, service.ErrNoteExists):
		fail(w, r, http.StatusConflict, "note_exists", err.Error())
	case errors.Is(err, service.ErrNotifierDisabled):
		fail(w, r, http.StatusServiceUnavailable, "alerts_disabled", err.Error())
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		fail(w, r, http.StatusInternalServerError, "internal", "internal server error")
	}
}
