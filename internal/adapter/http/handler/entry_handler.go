package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpatel/khata/internal/adapter/http/dto"
	"github.com/mpatel/khata/internal/usecase"
)

// EntryHandler handles entry and payment-history HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a new wage or invoice entry for a debtor.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(debtorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create entry", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ListByDebtor lists all entries for a debtor.
func (h *EntryHandler) ListByDebtor(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	entries, err := h.entryUC.ListEntriesByDebtor(r.Context(), debtorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListPaymentsByEntry lists the payment history of one entry.
func (h *EntryHandler) ListPaymentsByEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	payments, err := h.entryUC.ListPaymentsByEntry(r.Context(), entryID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list payments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}

// ListPaymentsByDebtor lists all payments recorded against a debtor.
func (h *EntryHandler) ListPaymentsByDebtor(w http.ResponseWriter, r *http.Request) {
	debtorID := chi.URLParam(r, "id")
	if debtorID == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	payments, err := h.entryUC.ListPaymentsByDebtor(r.Context(), debtorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
