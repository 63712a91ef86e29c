// Package refdata holds the static profile tables that parameterize the
// claim simulation engine: organization profiles, payer configurations,
// specialty code pools, and lifecycle distributions. The engine consumes
// these as read-only inputs; nothing here is generated or persisted as-is.
package refdata

import "fmt"

// Payer types.
const (
	PayerCommercial  = "commercial"
	PayerMedicare    = "medicare"
	PayerMedicaid    = "medicaid"
	PayerTricare     = "tricare"
	PayerWorkersComp = "workers_comp"
	PayerSelfPay     = "self_pay"
)

// PayerConfig describes a single payer's adjudication profile.
type PayerConfig struct {
	ID                 string
	Name               string
	Type               string
	FilingDeadlineDays int
	AppealDeadlineDays int
	AvgProcessingDays  int
	BaseDenialRate     float64
}

// CategoryWeight pairs a denial category with its share of the
// organization's denials. Weights in a table sum to 1.
type CategoryWeight struct {
	Category string
	Weight   float64
}

// PayerMixEntry pairs a payer ID with its share of an organization's
// patients. Weights in a mix sum to 1.
type PayerMixEntry struct {
	PayerID string
	Weight  float64
}

// OrganizationProfile drives every probability the engine uses for one
// tenant.
type OrganizationProfile struct {
	Code         string
	Name         string
	Specialty    string
	FacilityType string
	Size         string
	Region       string

	HistoricalClaimTarget int
	WeekdayClaimRate      float64
	WeekendClaimRate      float64
	PatientCount          int
	ProviderCount         int

	PayerMix         []PayerMixEntry
	BaseDenialRate   float64
	DenialCategories []CategoryWeight

	// Age demographics for generated patients.
	AgeMean   float64
	AgeStdDev float64
	AgeMin    int
	AgeMax    int

	// Per-claim count parameters, clamped to [1,8] diagnoses and [1,10]
	// line items at draw time.
	DiagnosisCountMean   float64
	DiagnosisCountStdDev float64
	LineItemCountMean    float64
	LineItemCountStdDev  float64
}

// MixWeights splits a payer mix into the parallel slices weightedChoice
// consumes.
func (p *OrganizationProfile) MixWeights() ([]string, []float64) {
	ids := make([]string, len(p.PayerMix))
	weights := make([]float64, len(p.PayerMix))
	for i, m := range p.PayerMix {
		ids[i] = m.PayerID
		weights[i] = m.Weight
	}
	return ids, weights
}

// CategoryWeights splits a denial category table into parallel slices.
func (p *OrganizationProfile) CategoryWeights() ([]string, []float64) {
	cats := make([]string, len(p.DenialCategories))
	weights := make([]float64, len(p.DenialCategories))
	for i, c := range p.DenialCategories {
		cats[i] = c.Category
		weights[i] = c.Weight
	}
	return cats, weights
}

// CheckWeights returns an error when a weight table does not sum to 1 within
// tolerance. Profiles are package data, so this is exercised by tests rather
// than at runtime.
func CheckWeights(name string, weights []float64) error {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("%s: weights sum to %.4f, want 1", name, sum)
	}
	return nil
}
