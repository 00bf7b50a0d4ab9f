package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarryForwardResult is derived from a member's matched and claimed payment
// history; it is recomputed on every call and never persisted.
// CarryForward is always in [0, MonthlyAmount).
type CarryForwardResult struct {
	UserID           int32           `json:"user_id"`
	DepartmentID     int32           `json:"department_id"`
	MonthlyAmount    decimal.Decimal `json:"monthly_amount"`
	TotalContributed decimal.Decimal `json:"total_contributed"`
	MonthsCleared    int32           `json:"months_cleared"`
	CarryForward     decimal.Decimal `json:"carry_forward"`
	BalanceDate      time.Time       `json:"balance_date"`
}
