package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
)

// OutstandingHandler serves outstanding-balance views.
type OutstandingHandler struct {
	outstandingUC *usecase.OutstandingUseCase
}

// NewOutstandingHandler creates a new OutstandingHandler.
func NewOutstandingHandler(outstandingUC *usecase.OutstandingUseCase) *OutstandingHandler {
	return &OutstandingHandler{outstandingUC: outstandingUC}
}

// GetByDebtor returns one debtor's outstanding, recomputed from the full
// entry and payment set.
func (h *OutstandingHandler) GetByDebtor(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	result, err := h.outstandingUC.GetDebtorOutstanding(r.Context(), debtorID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute outstanding", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListByKind returns every debtor of one kind that still owes money.
func (h *OutstandingHandler) ListByKind(w http.ResponseWriter, r *http.Request) {
	kind := domain.DebtorKind(r.URL.Query().Get("kind"))

	results, err := h.outstandingUC.ListDebtorsWithOutstanding(r.Context(), kind)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list outstanding", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, results)
}
