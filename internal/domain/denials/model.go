package denials

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Denial categories. A denial's category always comes from the owning
// organization's weighted category table or the global fallback pool.
const (
	CategoryEligibility        = "eligibility"
	CategoryAuthorization      = "authorization"
	CategoryMedicalNecessity   = "medical_necessity"
	CategoryCodingError        = "coding_error"
	CategoryDuplicate          = "duplicate"
	CategoryTimelyFiling       = "timely_filing"
	CategoryCoordination       = "coordination_of_benefits"
	CategoryMissingInformation = "missing_information"
	CategoryNonCoveredService  = "non_covered_service"
	CategoryBundling           = "bundling"
	CategoryCredentialing      = "credentialing"
)

// AllCategories is the 11-value category enumeration.
var AllCategories = []string{
	CategoryEligibility, CategoryAuthorization, CategoryMedicalNecessity,
	CategoryCodingError, CategoryDuplicate, CategoryTimelyFiling,
	CategoryCoordination, CategoryMissingInformation,
	CategoryNonCoveredService, CategoryBundling, CategoryCredentialing,
}

// Denial statuses.
const (
	StatusNew             = "new"
	StatusInReview        = "in_review"
	StatusAppealing       = "appealing"
	StatusAppealSubmitted = "appeal_submitted"
	StatusOverturned      = "overturned"
	StatusUpheld          = "upheld"
	StatusWrittenOff      = "written_off"
)

// AllStatuses is the 7-value denial status enumeration.
var AllStatuses = []string{
	StatusNew, StatusInReview, StatusAppealing, StatusAppealSubmitted,
	StatusOverturned, StatusUpheld, StatusWrittenOff,
}

var appealEligible = map[string]bool{
	StatusAppealing: true, StatusAppealSubmitted: true,
	StatusOverturned: true, StatusUpheld: true,
}

// AppealEligible reports whether a denial in status s owns an appeal.
func AppealEligible(s string) bool { return appealEligible[s] }

// Denial maps to the denial table. The advisory fields (SuggestedAction,
// OverturnLikelihood, SimilarDenialCount) feed the worklist UI and are
// synthesized narratives, not adjudication results.
type Denial struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	ClaimID            uuid.UUID       `db:"claim_id" json:"claim_id"`
	OrgID              uuid.UUID       `db:"org_id" json:"org_id"`
	LineItemID         *uuid.UUID      `db:"line_item_id" json:"line_item_id,omitempty"`
	Category           string          `db:"category" json:"category"`
	Code               string          `db:"code" json:"code"`
	Description        string          `db:"description" json:"description"`
	Status             string          `db:"status" json:"status"`
	Amount             decimal.Decimal `db:"amount" json:"amount"`
	ReceivedAt         time.Time       `db:"received_at" json:"received_at"`
	AppealDeadline     time.Time       `db:"appeal_deadline" json:"appeal_deadline"`
	SuggestedAction    string          `db:"suggested_action" json:"suggested_action"`
	OverturnLikelihood float64         `db:"overturn_likelihood" json:"overturn_likelihood"`
	SimilarDenialCount int             `db:"similar_denial_count" json:"similar_denial_count"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Appeal levels map one-to-one onto appeal types.
const (
	TypeReconsideration = "reconsideration"
	TypeFormalAppeal    = "formal_appeal"
	TypeExternalReview  = "external_review"
)

// TypeForLevel returns the appeal type for a 1-based level.
func TypeForLevel(level int) string {
	switch level {
	case 1:
		return TypeReconsideration
	case 2:
		return TypeFormalAppeal
	default:
		return TypeExternalReview
	}
}

// Appeal statuses and outcomes.
const (
	AppealStatusDraft     = "draft"
	AppealStatusSubmitted = "submitted"
	AppealStatusDecided   = "decided"

	OutcomeOverturned          = "overturned"
	OutcomePartiallyOverturned = "partially_overturned"
	OutcomeUpheld              = "upheld"
)

// Appeal maps to the appeal table. Outcome is populated iff Status is
// decided.
type Appeal struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	DenialID        uuid.UUID        `db:"denial_id" json:"denial_id"`
	ClaimID         uuid.UUID        `db:"claim_id" json:"claim_id"`
	Level           int              `db:"level" json:"level"`
	Type            string           `db:"type" json:"type"`
	Status          string           `db:"status" json:"status"`
	Outcome         *string          `db:"outcome" json:"outcome,omitempty"`
	ResponseNotes   *string          `db:"response_notes" json:"response_notes,omitempty"`
	RecoveredAmount *decimal.Decimal `db:"recovered_amount" json:"recovered_amount,omitempty"`
	SubmittedAt     time.Time        `db:"submitted_at" json:"submitted_at"`
	DecidedAt       *time.Time       `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}
