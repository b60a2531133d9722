package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cashbook directions.
const (
	CashbookIncome  = "income"
	CashbookExpense = "expense"
)

// Cashbook categories.
const (
	CashbookCategoryWagePayment   = "wage_payment"
	CashbookCategorySalesPayment  = "sales_payment"
	CashbookCategoryEntryCreation = "entry_creation"
)

// CashbookEntry records cash movement in the firm's book: income when a
// client settles dues, expense when a worker is paid.
type CashbookEntry struct {
	TransactionDate time.Time
	CreatedAt       time.Time
	ID              string
	Direction       string
	Category        string
	PartnerRef      string
	Description     string
	Amount          decimal.Decimal
}
