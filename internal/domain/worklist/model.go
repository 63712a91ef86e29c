package worklist

import (
	"time"

	"github.com/google/uuid"
)

// Task categories.
const (
	CategoryDenialReview   = "denial_review"
	CategoryAppealDeadline = "appeal_deadline"
	CategoryEligibility    = "eligibility_check"
	CategoryCodingReview   = "coding_review"
	CategoryClaimFollowUp  = "claim_follow_up"
	CategoryPatientContact = "patient_contact"
)

// Task priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Task statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Task maps to the task table. DueDate, when present, is derived from a
// deadline-bearing parent (denial appeal deadline, claim age). The
// confidence/reasoning/score fields drive worklist triage.
type Task struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	OrgID       uuid.UUID  `db:"org_id" json:"org_id"`
	ClaimID     *uuid.UUID `db:"claim_id" json:"claim_id,omitempty"`
	DenialID    *uuid.UUID `db:"denial_id" json:"denial_id,omitempty"`
	PatientID   *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	Category    string     `db:"category" json:"category"`
	Priority    string     `db:"priority" json:"priority"`
	Status      string     `db:"status" json:"status"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	Confidence  *float64   `db:"confidence" json:"confidence,omitempty"`
	Reasoning   *string    `db:"reasoning" json:"reasoning,omitempty"`
	Score       *float64   `db:"score" json:"score,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
