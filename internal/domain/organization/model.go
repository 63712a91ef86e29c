package organization

import (
	"time"

	"github.com/google/uuid"
)

// Organization maps to the organization table. One row per billing provider
// tenant; created once by the seeding pipeline from its configured profile.
type Organization struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Specialty    string    `db:"specialty" json:"specialty"`
	FacilityType string    `db:"facility_type" json:"facility_type"`
	Size         string    `db:"size" json:"size"`
	Region       string    `db:"region" json:"region"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Seeding phases. A progress record walks patients -> claims -> complete.
const (
	PhasePatients = "patients"
	PhaseClaims   = "claims"
	PhaseComplete = "complete"
)

// SeedProgress is the persisted per-organization state record driving the
// resumable seeding chain. Counters are advanced only after a batch's writes
// have been issued; every continuation reloads this row and recomputes its
// remaining work from it.
type SeedProgress struct {
	ID              uuid.UUID `db:"id" json:"id"`
	OrgID           uuid.UUID `db:"org_id" json:"org_id"`
	Phase           string    `db:"phase" json:"phase"`
	PatientsCreated int       `db:"patients_created" json:"patients_created"`
	PatientTarget   int       `db:"patient_target" json:"patient_target"`
	ClaimsCreated   int       `db:"claims_created" json:"claims_created"`
	ClaimTarget     int       `db:"claim_target" json:"claim_target"`
	StartedAt       time.Time `db:"started_at" json:"started_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Complete reports whether both targets have been reached.
func (p *SeedProgress) Complete() bool {
	return p.PatientsCreated >= p.PatientTarget && p.ClaimsCreated >= p.ClaimTarget
}
