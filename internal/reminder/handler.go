// internal/reminder/handler.go
package reminder

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bibliotheca/internal/httpapi"
)

const defaultUpcomingWindow = 30

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the reminder endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/reminders/upcoming", h.handleUpcoming)
	r.Get("/reminders/overdue", h.handleOverdue)
	r.Get("/reminders/history", h.handleHistory)
	r.Post("/reminders/trigger", h.handleTrigger)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	days := defaultUpcomingWindow
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpapi.RespondError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	candidates, err := h.service.UpcomingDue(r.Context(), days)
	if err != nil {
		httpapi.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, candidates)
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.service.Overdue(r.Context())
	if err != nil {
		httpapi.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, candidates)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	var loanID *uuid.UUID
	if raw := r.URL.Query().Get("loan_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpapi.RespondError(w, http.StatusBadRequest, "invalid loan id")
			return
		}
		loanID = &parsed
	}

	records, err := h.service.History(r.Context(), loanID)
	if err != nil {
		httpapi.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, records)
}

func (h *Handler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	logged, err := h.service.TriggerCycle(r.Context())
	if err != nil {
		httpapi.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, logged)
}
