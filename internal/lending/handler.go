// internal/lending/handler.go
package lending

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bibliotheca/internal/httpapi"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the lending endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/loans", h.handleBorrow)
	r.Post("/loans/{loanID}/return", h.handleReturn)
	r.Get("/loans", h.handleListAll)
	r.Get("/loans/my", h.handleListMine)
	r.Get("/loans/{loanID}", h.handleGet)
	r.Get("/dashboard/stats", h.handleStats)
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	holderID, ok := httpapi.HolderID(r.Context())
	if !ok {
		httpapi.RespondError(w, http.StatusUnauthorized, "holder identity required")
		return
	}

	var req struct {
		ItemID uuid.UUID `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	loan, err := h.service.Borrow(r.Context(), holderID, req.ItemID)
	if err != nil {
		h.respondBusinessError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusCreated, loan)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	holderID, ok := httpapi.HolderID(r.Context())
	if !ok {
		httpapi.RespondError(w, http.StatusUnauthorized, "holder identity required")
		return
	}

	loanID, err := uuid.Parse(chi.URLParam(r, "loanID"))
	if err != nil {
		httpapi.RespondError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	if err := h.service.Return(r.Context(), loanID, holderID); err != nil {
		h.respondBusinessError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, map[string]string{"status": "returned"})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(chi.URLParam(r, "loanID"))
	if err != nil {
		httpapi.RespondError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		h.respondBusinessError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, loan)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	holderID, ok := httpapi.HolderID(r.Context())
	if !ok {
		httpapi.RespondError(w, http.StatusUnauthorized, "holder identity required")
		return
	}

	loans, err := h.service.ListHolderLoans(r.Context(), holderID)
	if err != nil {
		h.respondBusinessError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, loans)
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListAllLoans(r.Context())
	if err != nil {
		h.respondBusinessError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, loans)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.respondBusinessError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, stats)
}

// respondBusinessError maps expected business outcomes to client statuses.
// Anything unrecognized is a storage fault and stays generic.
func (h *Handler) respondBusinessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrLoanNotFound):
		httpapi.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrItemUnavailable), errors.Is(err, ErrNotOwner), errors.Is(err, ErrAlreadyReturned):
		httpapi.RespondError(w, http.StatusConflict, err.Error())
	default:
		httpapi.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
