package handler

import (
	"net/http"
	"time"

	"github.com/mpatel/khata/internal/adapter/http/dto"
	"github.com/mpatel/khata/internal/usecase"
)

// CashbookHandler serves the firm cashbook.
type CashbookHandler struct {
	cashbookRepo usecase.CashbookRepository
}

// NewCashbookHandler creates a new CashbookHandler.
func NewCashbookHandler(cashbookRepo usecase.CashbookRepository) *CashbookHandler {
	return &CashbookHandler{cashbookRepo: cashbookRepo}
}

// List lists cashbook entries in a date range, newest first. Defaults to the
// last 30 days.
func (h *CashbookHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		from = parsed
	}

	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		to = parsed
	}

	limit := parseIntQuery(r, "limit", 100)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.cashbookRepo.List(r.Context(), from, to, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cashbook", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashbookEntriesFromDomain(entries))
}
