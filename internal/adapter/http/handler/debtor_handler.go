package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpatel/khata/internal/adapter/http/dto"
	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
)

// DebtorService defines the behavior needed by DebtorHandler.
type DebtorService interface {
	CreateDebtor(ctx context.Context, input usecase.CreateDebtorInput) (*domain.Debtor, error)
	GetDebtor(ctx context.Context, id string) (*domain.Debtor, error)
	ListDebtors(ctx context.Context, input usecase.ListDebtorsInput) ([]*domain.Debtor, error)
}

// DebtorHandler handles debtor-related HTTP requests.
type DebtorHandler struct {
	debtorUC DebtorService
}

// NewDebtorHandler creates a new DebtorHandler.
func NewDebtorHandler(debtorUC DebtorService) *DebtorHandler {
	return &DebtorHandler{debtorUC: debtorUC}
}

// Create creates a new debtor.
func (h *DebtorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debtor, err := h.debtorUC.CreateDebtor(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create debtor", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DebtorFromDomain(debtor))
}

// Get retrieves a debtor by ID.
func (h *DebtorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing debtor ID", "")
		return
	}

	debtor, err := h.debtorUC.GetDebtor(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get debtor", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DebtorFromDomain(debtor))
}

// List lists debtors of one kind.
func (h *DebtorHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := domain.DebtorKind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "invalid kind", "kind must be worker or client")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	debtors, err := h.debtorUC.ListDebtors(r.Context(), usecase.ListDebtorsInput{
		Kind:   kind,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list debtors", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDebtorsResponse{
		Debtors: dto.DebtorsFromDomain(debtors),
		Total:   int64(len(debtors)),
	})
}
