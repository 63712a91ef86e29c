package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types.
const (
	TypeInsurance = "insurance"
	TypePatient   = "patient"
)

// Payment methods.
const (
	MethodEFT         = "eft"
	MethodCheck       = "check"
	MethodVirtualCard = "virtual_card"
	MethodCash        = "cash"
	MethodCreditCard  = "credit_card"
)

// Payment maps to the payment table. Payments exist only for settled claims:
// at most one insurance payment and at most one patient payment per claim
// generation pass.
type Payment struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	ClaimID   uuid.UUID       `db:"claim_id" json:"claim_id"`
	OrgID     uuid.UUID       `db:"org_id" json:"org_id"`
	Type      string          `db:"type" json:"type"`
	Method    string          `db:"method" json:"method"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Reference string          `db:"reference" json:"reference"`
	PaidAt    time.Time       `db:"paid_at" json:"paid_at"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Adjustment group codes (X12 CAS groups) and reason codes used by the
// generator.
const (
	GroupContractual     = "CO"
	GroupPatientResp     = "PR"
	ReasonContractual    = "45"
	ReasonDeductible     = "1"
	ReasonCoinsurance    = "2"
	ReasonCopay          = "3"
)

// Adjustment maps to the adjustment table; one row per claim/line-item pair
// whenever a contractual or patient-responsibility adjustment applies.
type Adjustment struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	ClaimID     uuid.UUID       `db:"claim_id" json:"claim_id"`
	LineItemID  uuid.UUID       `db:"line_item_id" json:"line_item_id"`
	GroupCode   string          `db:"group_code" json:"group_code"`
	ReasonCode  string          `db:"reason_code" json:"reason_code"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
