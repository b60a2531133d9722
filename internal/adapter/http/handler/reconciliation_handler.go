package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpatel/khata/internal/usecase"
)

// ReconciliationHandler serves reconciliation checks.
type ReconciliationHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC *usecase.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// ReconcileAll compares the cached outstanding of every debtor against the
// amount recomputed from their entries and payments.
func (h *ReconciliationHandler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.ReconcileAll(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "reconciliation failed", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ReconcileDebtor runs the reconciliation check for a single debtor.
func (h *ReconciliationHandler) ReconcileDebtor(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileDebtor(r.Context(), debtorID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "reconciliation failed", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, result)
}
