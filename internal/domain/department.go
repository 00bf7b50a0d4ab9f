package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Department is a contribution group within an organization.
// MonthlyContribution is nil until an admin configures it; the carry-forward
// calculator returns no result for departments without one.
type Department struct {
	ID                  int32            `json:"id"`
	OrgID               int32            `json:"org_id"`
	Name                string           `json:"name"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution,omitempty"`
	CreatedOn           time.Time        `json:"created_on"`
}
