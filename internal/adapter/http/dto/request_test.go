package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
)

func TestCreateDebtorRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateDebtorRequest{
		Kind:  "worker",
		Name:  "Ramesh",
		Phone: "+919876543210",
	}

	got := req.ToUseCaseInput()
	want := usecase.CreateDebtorInput{
		Kind:  domain.DebtorKindWorker,
		Name:  "Ramesh",
		Phone: "+919876543210",
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestCreateEntryRequest_ToUseCaseInput(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		request     *CreateEntryRequest
		wantGross   string
		wantPaid    string
		expectError bool
	}{
		{
			name: "valid amounts",
			request: &CreateEntryRequest{
				Kind:           "wage",
				EntryDate:      &date,
				GrossAmount:    "500.50",
				PaidAtCreation: "100",
			},
			wantGross: "500.50",
			wantPaid:  "100",
		},
		{
			name: "paid at creation defaults to zero",
			request: &CreateEntryRequest{
				GrossAmount: "500",
			},
			wantGross: "500",
			wantPaid:  "0",
		},
		{
			name:        "invalid gross",
			request:     &CreateEntryRequest{GrossAmount: "bad"},
			expectError: true,
		},
		{
			name: "invalid paid at creation",
			request: &CreateEntryRequest{
				GrossAmount:    "500",
				PaidAtCreation: "bad",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput("debtor-1")

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.DebtorID != "debtor-1" {
				t.Fatalf("expected debtor ID to carry through, got %q", got.DebtorID)
			}

			if !got.GrossAmount.Equal(decimal.RequireFromString(tt.wantGross)) {
				t.Fatalf("gross = %s, want %s", got.GrossAmount, tt.wantGross)
			}

			if !got.PaidAtCreation.Equal(decimal.RequireFromString(tt.wantPaid)) {
				t.Fatalf("paid = %s, want %s", got.PaidAtCreation, tt.wantPaid)
			}
		})
	}
}

func TestSettleRequest_ToUseCaseInput(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	req := &SettleRequest{
		Amount:      "120.25",
		Mode:        "upi",
		PaymentDate: &date,
		PartnerRef:  "partner-1",
		Notes:       "weekly settle",
	}

	got, err := req.ToUseCaseInput("debtor-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.DebtorID != "debtor-1" || got.Mode != domain.PaymentModeUPI {
		t.Fatalf("unexpected input: %+v", got)
	}

	if !got.Amount.Equal(decimal.RequireFromString("120.25")) {
		t.Fatalf("amount = %s, want 120.25", got.Amount)
	}

	if !got.PaymentDate.Equal(date) {
		t.Fatalf("payment date = %s, want %s", got.PaymentDate, date)
	}

	if _, err := (&SettleRequest{Amount: "bad", Mode: "cash"}).ToUseCaseInput("debtor-1"); err == nil {
		t.Fatal("expected error for malformed amount")
	}
}

func TestFullClearRequest_ToUseCaseInput(t *testing.T) {
	req := &FullClearRequest{
		Mode:  "cash",
		Notes: "closing the book",
	}

	got := req.ToUseCaseInput("debtor-9")

	if got.DebtorID != "debtor-9" || got.Mode != domain.PaymentModeCash || got.Notes != "closing the book" {
		t.Fatalf("unexpected input: %+v", got)
	}
}
