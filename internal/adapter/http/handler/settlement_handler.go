package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpatel/khata/internal/adapter/http/dto"
	"github.com/mpatel/khata/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	Settle(ctx context.Context, input usecase.SettleInput) (*usecase.SettlementResult, error)
	FullClear(ctx context.Context, input usecase.FullClearInput) (*usecase.SettlementResult, error)
}

// SettlementHandler handles settlement HTTP requests.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Settle applies a payment to a debtor's open entries oldest-first.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	var req dto.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(debtorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.settlementUC.Settle(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, settlementResponse(result))
}

// FullClear settles the debtor's entire outstanding in one call.
func (h *SettlementHandler) FullClear(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	var req dto.FullClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.settlementUC.FullClear(r.Context(), req.ToUseCaseInput(debtorID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to clear outstanding", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, settlementResponse(result))
}

func settlementResponse(result *usecase.SettlementResult) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		Debtor:      dto.DebtorFromDomain(result.Debtor),
		Payments:    dto.PaymentsFromDomain(result.Payments),
		Settled:     result.Settled,
		Outstanding: result.Outstanding,
	}
}
