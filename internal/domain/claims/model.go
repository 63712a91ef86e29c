package claims

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Claim lifecycle statuses.
const (
	StatusDraft         = "draft"
	StatusReadyToSubmit = "ready_to_submit"
	StatusSubmitted     = "submitted"
	StatusAcknowledged  = "acknowledged"
	StatusPending       = "pending"
	StatusPaid          = "paid"
	StatusPartialPaid   = "partial_paid"
	StatusDenied        = "denied"
	StatusRejected      = "rejected"
	StatusAppealed      = "appealed"
	StatusWrittenOff    = "written_off"
	StatusClosed        = "closed"
)

// AllStatuses is the full 12-value status enumeration.
var AllStatuses = []string{
	StatusDraft, StatusReadyToSubmit, StatusSubmitted, StatusAcknowledged,
	StatusPending, StatusPaid, StatusPartialPaid, StatusDenied,
	StatusRejected, StatusAppealed, StatusWrittenOff, StatusClosed,
}

var validStatuses = map[string]bool{
	StatusDraft: true, StatusReadyToSubmit: true, StatusSubmitted: true,
	StatusAcknowledged: true, StatusPending: true, StatusPaid: true,
	StatusPartialPaid: true, StatusDenied: true, StatusRejected: true,
	StatusAppealed: true, StatusWrittenOff: true, StatusClosed: true,
}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool { return validStatuses[s] }

var settledStatuses = map[string]bool{
	StatusPaid: true, StatusPartialPaid: true, StatusWrittenOff: true, StatusClosed: true,
}

// Settled reports whether a claim in status s carries financial totals.
// Allowed/paid/adjustment/patient-responsibility amounts are defined for
// settled statuses only.
func Settled(s string) bool { return settledStatuses[s] }

var terminalStatuses = map[string]bool{
	StatusPaid: true, StatusClosed: true, StatusWrittenOff: true, StatusRejected: true,
}

// Terminal reports whether the lifecycle machine may never leave status s.
func Terminal(s string) bool { return terminalStatuses[s] }

// Claim priorities for worklist triage.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// SettledTotals carries the four financial totals that exist only once a
// claim reaches a settled status.
type SettledTotals struct {
	AllowedAmount         decimal.Decimal `json:"allowed_amount"`
	PaidAmount            decimal.Decimal `json:"paid_amount"`
	AdjustmentAmount      decimal.Decimal `json:"adjustment_amount"`
	PatientResponsibility decimal.Decimal `json:"patient_responsibility"`
}

// Claim maps to the claim table. Totals is nil for unsettled statuses.
type Claim struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	OrgID       uuid.UUID       `db:"org_id" json:"org_id"`
	PatientID   uuid.UUID       `db:"patient_id" json:"patient_id"`
	CoverageID  uuid.UUID       `db:"coverage_id" json:"coverage_id"`
	ClaimNumber string          `db:"claim_number" json:"claim_number"`
	PayerType   string          `db:"payer_type" json:"payer_type"`
	Status      string          `db:"status" json:"status"`
	Priority    string          `db:"priority" json:"priority"`
	ServiceDate time.Time       `db:"service_date" json:"service_date"`
	SubmittedAt *time.Time      `db:"submitted_at" json:"submitted_at,omitempty"`
	ChargeAmount decimal.Decimal `db:"charge_amount" json:"charge_amount"`
	Totals      *SettledTotals  `json:"totals,omitempty"`
	DenialRisk  float64         `db:"denial_risk" json:"denial_risk"`
	RiskFactors []string        `db:"risk_factors" json:"risk_factors,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// LineItem maps to the claim_line_item table.
type LineItem struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	ClaimID       uuid.UUID        `db:"claim_id" json:"claim_id"`
	LineNumber    int              `db:"line_number" json:"line_number"`
	ProcedureCode string           `db:"procedure_code" json:"procedure_code"`
	Description   string           `db:"description" json:"description"`
	Modifiers     []string         `db:"modifiers" json:"modifiers,omitempty"`
	Units         int              `db:"units" json:"units"`
	ChargeAmount  decimal.Decimal  `db:"charge_amount" json:"charge_amount"`
	AllowedAmount *decimal.Decimal `db:"allowed_amount" json:"allowed_amount,omitempty"`
	PaidAmount    *decimal.Decimal `db:"paid_amount" json:"paid_amount,omitempty"`
	Status        string           `db:"status" json:"status"`
}

// Diagnosis maps to the claim_diagnosis table. Sequence 1 is always the
// primary diagnosis.
type Diagnosis struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClaimID     uuid.UUID `db:"claim_id" json:"claim_id"`
	Sequence    int       `db:"sequence" json:"sequence"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	IsPrimary   bool      `db:"is_primary" json:"is_primary"`
}
