package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revcycle/revcycle/internal/domain/patients"
	"github.com/revcycle/revcycle/internal/sim/identifier"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// PatientBundle is a patient with its coverages: always one primary, and a
// type-compatible secondary for a minority of patients.
type PatientBundle struct {
	Patient   *patients.Patient
	Coverages []*patients.Coverage
}

// secondaryCoverageRate is the share of patients carrying a second coverage.
const secondaryCoverageRate = 0.15

// Patient generates one patient bundle for an organization. seq is the
// patient's 1-based sequence within the org; asOf anchors ages and effective
// dates.
func (g *Generator) Patient(profile *refdata.OrganizationProfile, orgID uuid.UUID, seq int, asOf time.Time) (*PatientBundle, error) {
	gender := "male"
	first := g.pick(firstNamesMale)
	if sampling.Bernoulli(g.src, 0.5) {
		gender = "female"
		first = g.pick(firstNamesFemale)
	}
	last := g.pick(lastNames)

	ageYears := sampling.ClampedNormalInt(g.src, profile.AgeMean, profile.AgeStdDev, profile.AgeMin, profile.AgeMax)
	// Spread birthdays through the year so same-age patients do not share one.
	birthDate := asOf.AddDate(-ageYears, 0, -sampling.IntN(g.src, 365))

	p := &patients.Patient{
		ID:         uuid.New(),
		OrgID:      orgID,
		Seq:        seq,
		MRN:        identifier.MRN(g.src),
		FirstName:  first,
		LastName:   last,
		Gender:     gender,
		BirthDate:  birthDate,
		Address:    g.pick(streets),
		City:       g.pick(cities),
		State:      g.pick(states),
		PostalCode: g.pick(zips),
		Phone:      g.phone(),
		Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), seq),
		CreatedAt:  asOf,
	}

	primary, err := g.coverage(profile, p, patients.PriorityPrimary, "", asOf)
	if err != nil {
		return nil, err
	}
	coverages := []*patients.Coverage{primary}

	if sampling.Bernoulli(g.src, secondaryCoverageRate) {
		if secondary := g.secondaryCoverage(p, primary, asOf); secondary != nil {
			coverages = append(coverages, secondary)
		}
	}

	return &PatientBundle{Patient: p, Coverages: coverages}, nil
}

// coverage draws a primary coverage from the organization's payer mix, or
// builds one for a fixed payer ID when payerID is non-empty.
func (g *Generator) coverage(profile *refdata.OrganizationProfile, p *patients.Patient, priority, payerID string, asOf time.Time) (*patients.Coverage, error) {
	if payerID == "" {
		ids, weights := profile.MixWeights()
		chosen, err := sampling.WeightedChoice(g.src, ids, weights)
		if err != nil {
			return nil, fmt.Errorf("draw payer for %s: %w", profile.Code, err)
		}
		payerID = chosen
	}
	payer, ok := refdata.PayerByID(payerID)
	if !ok {
		return nil, fmt.Errorf("unknown payer %q in %s mix", payerID, profile.Code)
	}
	return g.buildCoverage(p, payer, priority, asOf), nil
}

// secondaryCoverage picks a payer compatible with the primary's type. Some
// primary types (medicaid, self_pay) never have one.
func (g *Generator) secondaryCoverage(p *patients.Patient, primary *patients.Coverage, asOf time.Time) *patients.Coverage {
	compatible := refdata.CompatibleSecondaries(primary.PayerType)
	if len(compatible) == 0 {
		return nil
	}
	payerID := compatible[sampling.IntN(g.src, len(compatible))]
	if payerID == primary.PayerID {
		return nil
	}
	payer, ok := refdata.PayerByID(payerID)
	if !ok {
		return nil
	}
	return g.buildCoverage(p, payer, patients.PrioritySecondary, asOf)
}

func (g *Generator) buildCoverage(p *patients.Patient, payer refdata.PayerConfig, priority string, asOf time.Time) *patients.Coverage {
	c := &patients.Coverage{
		ID:        uuid.New(),
		PatientID: p.ID,
		OrgID:     p.OrgID,
		PayerID:   payer.ID,
		PayerName: payer.Name,
		PayerType: payer.Type,
		Priority:  priority,
		MemberID:  g.memberID(payer.Type),
		// Effective one to five years back, so every coverage predates any
		// sampled date of service.
		EffectiveDate: asOf.AddDate(0, 0, -(365 + sampling.IntN(g.src, 4*365))),
		CreatedAt:     asOf,
	}
	switch payer.Type {
	case refdata.PayerCommercial, refdata.PayerTricare:
		grp := identifier.GroupNumber(g.src)
		c.GroupNumber = &grp
	}
	return c
}

// memberID formats a payer-type appropriate member identifier. Medicare uses
// the MBI pattern; everything else gets a prefixed numeric ID.
func (g *Generator) memberID(payerType string) string {
	switch payerType {
	case refdata.PayerMedicare:
		return identifier.MemberID(g.src)
	case refdata.PayerMedicaid:
		return fmt.Sprintf("MCD%09d", sampling.IntN(g.src, 1000000000))
	case refdata.PayerSelfPay:
		return fmt.Sprintf("SELF%07d", sampling.IntN(g.src, 10000000))
	default:
		return fmt.Sprintf("XZE%09d", sampling.IntN(g.src, 1000000000))
	}
}

func (g *Generator) phone() string {
	return fmt.Sprintf("(%03d) 555-%04d", 200+sampling.IntN(g.src, 800), sampling.IntN(g.src, 10000))
}
