package patients

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Seq is the patient's sequence number
// within its organization; the seeding chain assigns it monotonically so
// generated identifiers never collide.
type Patient struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrgID      uuid.UUID `db:"org_id" json:"org_id"`
	Seq        int       `db:"seq" json:"seq"`
	MRN        string    `db:"mrn" json:"mrn"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Gender     string    `db:"gender" json:"gender"`
	BirthDate  time.Time `db:"birth_date" json:"birth_date"`
	Address    string    `db:"address" json:"address"`
	City       string    `db:"city" json:"city"`
	State      string    `db:"state" json:"state"`
	PostalCode string    `db:"postal_code" json:"postal_code"`
	Phone      string    `db:"phone" json:"phone"`
	Email      string    `db:"email" json:"email"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Coverage priorities.
const (
	PriorityPrimary   = "primary"
	PrioritySecondary = "secondary"
	PriorityTertiary  = "tertiary"
)

// Coverage maps to the coverage table. Each patient has exactly one primary
// coverage and optionally a secondary one.
type Coverage struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	OrgID         uuid.UUID  `db:"org_id" json:"org_id"`
	PayerID       string     `db:"payer_id" json:"payer_id"`
	PayerName     string     `db:"payer_name" json:"payer_name"`
	PayerType     string     `db:"payer_type" json:"payer_type"`
	Priority      string     `db:"priority" json:"priority"`
	MemberID      string     `db:"member_id" json:"member_id"`
	GroupNumber   *string    `db:"group_number" json:"group_number,omitempty"`
	EffectiveDate time.Time  `db:"effective_date" json:"effective_date"`
	TermDate      *time.Time `db:"term_date" json:"term_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
