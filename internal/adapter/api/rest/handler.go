package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"team-project-backend/internal/core/domain/submission"
	"team-project-backend/internal/core/ports"
)

// Greeting is the body returned for every accepted submission.
const Greeting = "Hello from team project backend!"

type Handler struct {
	service      ports.SubmissionService
	logger       *slog.Logger
	maxBodyBytes int64
}

func NewHandler(service ports.SubmissionService, logger *slog.Logger, maxBodyBytes int64) *Handler {
	return &Handler{service: service, logger: logger, maxBodyBytes: maxBodyBytes}
}

// SubmitCode handles POST /code
func (h *Handler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, err)
		return
	}

	if _, err := h.service.Submit(r.Context(), body); err != nil {
		var verr *submission.ValidationError
		switch {
		case errors.As(err, &verr):
			h.respondValidation(w, r, verr)
		case errors.Is(err, submission.ErrMalformed):
			h.respondError(w, r, http.StatusBadRequest, err)
		default:
			h.logger.ErrorContext(r.Context(), "failed to process submission", "error", err)
			h.respondError(w, r, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}

	h.respondText(w, http.StatusOK, Greeting)
}

func (h *Handler) respondValidation(w http.ResponseWriter, r *http.Request, verr *submission.ValidationError) {
	if !wantsJSON(r) {
		h.respondText(w, http.StatusBadRequest, verr.Error())
		return
	}
	h.respondJSON(w, http.StatusBadRequest, errorResponse{
		Error:   verr.Error(),
		Details: toViolationDTOs(verr.Violations),
	})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if !wantsJSON(r) {
		h.respondText(w, code, err.Error())
		return
	}
	h.respondJSON(w, code, errorResponse{Error: err.Error()})
}

func (h *Handler) respondText(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := io.WriteString(w, text); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
