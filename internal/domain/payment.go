package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusUnmatched PaymentStatus = "UNMATCHED"
	PaymentStatusMatched   PaymentStatus = "MATCHED"
	PaymentStatusClaimed   PaymentStatus = "CLAIMED"
)

// Payment is an already-settled incoming contribution. Invariant: the payment
// carries a department and user exactly when its status is not UNMATCHED.
type Payment struct {
	ID              int32           `json:"id"`
	OrgID           int32           `json:"org_id"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference,omitempty"`
	AccountNumber   string          `json:"account_number,omitempty"`
	Status          PaymentStatus   `json:"status"`
	DepartmentID    *int32          `json:"department_id,omitempty"`
	UserID          *int32          `json:"user_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedOn       time.Time       `json:"created_on"`
}
