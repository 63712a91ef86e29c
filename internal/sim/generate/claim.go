package generate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/patients"
	"github.com/revcycle/revcycle/internal/sim/identifier"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// ClaimBundle is a claim with its line items and diagnoses.
type ClaimBundle struct {
	Claim     *claims.Claim
	LineItems []*claims.LineItem
	Diagnoses []*claims.Diagnosis
}

var (
	unitCounts  = []int{1, 2, 3}
	unitWeights = []float64{0.80, 0.15, 0.05}
)

// Claim generates one historical claim bundle. The date of service is drawn
// from the recency bands, the status from the distribution matching the
// claim's age class, and the financial totals exist only when that status is
// settled. seq feeds the claim number; asOf is the generation anchor.
func (g *Generator) Claim(profile *refdata.OrganizationProfile, orgID uuid.UUID, patient *patients.Patient, coverage *patients.Coverage, seq int, asOf time.Time) (*ClaimBundle, error) {
	dos, err := g.serviceDate(asOf)
	if err != nil {
		return nil, err
	}

	ageClass := refdata.ClassifyClaimAge(daysBetween(dos, asOf))
	names, weights := refdata.StatusDistribution(ageClass)
	status, err := sampling.WeightedChoice(g.src, names, weights)
	if err != nil {
		return nil, fmt.Errorf("draw claim status: %w", err)
	}

	return g.buildClaim(profile, orgID, patient, coverage, seq, dos, status, asOf)
}

// NewClaim generates a freshly authored claim dated asOf, for the daily
// generation path. Only draft and ready_to_submit statuses occur.
func (g *Generator) NewClaim(profile *refdata.OrganizationProfile, orgID uuid.UUID, patient *patients.Patient, coverage *patients.Coverage, seq int, asOf time.Time) (*ClaimBundle, error) {
	names, weights := refdata.NewClaimStatusDistribution()
	status, err := sampling.WeightedChoice(g.src, names, weights)
	if err != nil {
		return nil, fmt.Errorf("draw new claim status: %w", err)
	}
	return g.buildClaim(profile, orgID, patient, coverage, seq, toBusinessDay(asOf), status, asOf)
}

func (g *Generator) buildClaim(profile *refdata.OrganizationProfile, orgID uuid.UUID, patient *patients.Patient, coverage *patients.Coverage, seq int, dos time.Time, status string, asOf time.Time) (*ClaimBundle, error) {
	claimID := uuid.New()

	lines, charge := g.lineItems(profile, claimID, coverage.PayerType, status)
	diagnoses := g.diagnoses(profile, claimID)

	c := &claims.Claim{
		ID:           claimID,
		OrgID:        orgID,
		PatientID:    patient.ID,
		CoverageID:   coverage.ID,
		ClaimNumber:  identifier.ClaimNumber(dos.Year(), profile.Code, seq),
		PayerType:    coverage.PayerType,
		Status:       status,
		ServiceDate:  dos,
		ChargeAmount: charge,
		CreatedAt:    asOf,
		UpdatedAt:    asOf,
	}

	if status != claims.StatusDraft {
		submitted := addBusinessDays(dos, 1+sampling.IntN(g.src, 5))
		c.SubmittedAt = &submitted
	}

	if claims.Settled(status) {
		c.Totals = settleTotals(status, lines, charge)
	}

	c.DenialRisk = g.denialRisk(profile, coverage.PayerType, status)
	c.RiskFactors = g.riskFactors(profile)
	c.Priority = claimPriority(status, c.DenialRisk, charge)

	return &ClaimBundle{Claim: c, LineItems: lines, Diagnoses: diagnoses}, nil
}

// serviceDate draws a date of service weighted toward recency and shifted
// back to the nearest business day.
func (g *Generator) serviceDate(asOf time.Time) (time.Time, error) {
	weights := make([]float64, len(refdata.ServiceDateBands))
	for i, b := range refdata.ServiceDateBands {
		weights[i] = b.Weight
	}
	band, err := sampling.WeightedChoice(g.src, refdata.ServiceDateBands, weights)
	if err != nil {
		return time.Time{}, fmt.Errorf("draw service date band: %w", err)
	}
	days := band.MinDays + sampling.IntN(g.src, band.MaxDays-band.MinDays+1)
	return toBusinessDay(asOf.AddDate(0, 0, -days)), nil
}

// lineItems draws 1-10 line items from the specialty procedure pool and
// returns them with the total charge. Allowed and paid amounts are populated
// only when the claim status is settled.
func (g *Generator) lineItems(profile *refdata.OrganizationProfile, claimID uuid.UUID, payerType, status string) ([]*claims.LineItem, decimal.Decimal) {
	pool := refdata.ProceduresForSpecialty(profile.Specialty)
	poolWeights := make([]float64, len(pool))
	for i, p := range pool {
		poolWeights[i] = p.Weight
	}

	n := sampling.ClampedNormalInt(g.src, profile.LineItemCountMean, profile.LineItemCountStdDev, 1, 10)
	lineStatus := lineStatusFor(status)
	settled := claims.Settled(status)

	items := make([]*claims.LineItem, 0, n)
	total := decimal.Zero
	for i := 0; i < n; i++ {
		proc, err := sampling.WeightedChoice(g.src, pool, poolWeights)
		if err != nil {
			// Pools are package data validated by tests; an empty pool would
			// already have failed the first draw.
			break
		}
		units, _ := sampling.WeightedChoice(g.src, unitCounts, unitWeights)
		unitCharge := sampling.ClampedNormal(g.src, proc.ChargeMean, proc.ChargeStdDev, proc.ChargeMean*0.5, proc.ChargeMean*1.5)
		charge := decimal.NewFromFloat(unitCharge).Mul(decimal.NewFromInt(int64(units)))

		item := &claims.LineItem{
			ID:            uuid.New(),
			ClaimID:       claimID,
			LineNumber:    i + 1,
			ProcedureCode: proc.Code,
			Description:   proc.Description,
			Modifiers:     g.modifiers(),
			Units:         units,
			ChargeAmount:  charge,
			Status:        lineStatus,
		}
		if settled {
			allowed := ClampedAllowedAmount(g.src, charge, payerType)
			ratio, _ := refdata.PayoutRatio(status)
			paid := allowed.Mul(decimal.NewFromFloat(ratio)).Round(2)
			item.AllowedAmount = &allowed
			item.PaidAmount = &paid
		}
		items = append(items, item)
		total = total.Add(charge)
	}
	return items, total
}

// modifiers occasionally attaches a common CPT modifier.
func (g *Generator) modifiers() []string {
	if !sampling.Bernoulli(g.src, 0.10) {
		return nil
	}
	if sampling.Bernoulli(g.src, 0.5) {
		return []string{"25"}
	}
	return []string{"59"}
}

// diagnoses draws 1-8 distinct diagnosis codes; the first is primary.
func (g *Generator) diagnoses(profile *refdata.OrganizationProfile, claimID uuid.UUID) []*claims.Diagnosis {
	pool := refdata.DiagnosesForSpecialty(profile.Specialty)
	poolWeights := make([]float64, len(pool))
	for i, d := range pool {
		poolWeights[i] = d.Weight
	}

	n := sampling.ClampedNormalInt(g.src, profile.DiagnosisCountMean, profile.DiagnosisCountStdDev, 1, 8)
	if n > len(pool) {
		n = len(pool)
	}

	seen := make(map[string]bool, n)
	out := make([]*claims.Diagnosis, 0, n)
	for len(out) < n {
		dx, err := sampling.WeightedChoice(g.src, pool, poolWeights)
		if err != nil {
			break
		}
		if seen[dx.Code] {
			continue
		}
		seen[dx.Code] = true
		out = append(out, &claims.Diagnosis{
			ID:          uuid.New(),
			ClaimID:     claimID,
			Sequence:    len(out) + 1,
			Code:        dx.Code,
			Description: dx.Description,
			IsPrimary:   len(out) == 0,
		})
	}
	return out
}

// ClampedAllowedAmount applies the payer type's contractual allowed-ratio
// range to a charged amount. The ratio is drawn around the middle of the
// range and clamped to its bounds, so the result always lands in
// [charged*min, charged*max].
func ClampedAllowedAmount(src sampling.Source, charged decimal.Decimal, payerType string) decimal.Decimal {
	min, max := refdata.AllowedRatioBounds(payerType)
	ratio := sampling.Normal(src, (min+max)/2, (max-min)/4)
	if ratio < min {
		ratio = min
	}
	if ratio > max {
		ratio = max
	}
	return charged.Mul(decimal.NewFromFloat(ratio)).Round(2)
}

// settleTotals derives the four financial totals from the settled line
// items. Written-off claims adjust the full charge: nothing paid, nothing
// owed by the patient.
func settleTotals(status string, lines []*claims.LineItem, charge decimal.Decimal) *claims.SettledTotals {
	allowed := decimal.Zero
	paid := decimal.Zero
	for _, li := range lines {
		if li.AllowedAmount != nil {
			allowed = allowed.Add(*li.AllowedAmount)
		}
		if li.PaidAmount != nil {
			paid = paid.Add(*li.PaidAmount)
		}
	}
	if status == claims.StatusWrittenOff {
		return &claims.SettledTotals{
			AllowedAmount:         allowed,
			PaidAmount:            decimal.Zero,
			AdjustmentAmount:      charge,
			PatientResponsibility: decimal.Zero,
		}
	}
	return &claims.SettledTotals{
		AllowedAmount:         allowed,
		PaidAmount:            paid,
		AdjustmentAmount:      charge.Sub(allowed),
		PatientResponsibility: allowed.Sub(paid),
	}
}

// lineStatusFor derives the line item status from the claim status.
func lineStatusFor(claimStatus string) string {
	switch claimStatus {
	case claims.StatusDraft, claims.StatusReadyToSubmit:
		return "draft"
	case claims.StatusDenied, claims.StatusRejected, claims.StatusAppealed:
		return "denied"
	case claims.StatusPaid, claims.StatusPartialPaid, claims.StatusClosed:
		return "paid"
	case claims.StatusWrittenOff:
		return "adjusted"
	default:
		return "submitted"
	}
}

// denialRisk scores a claim's denial exposure in [0,1]. The claim's actual
// status dominates the score; payer type nudges it.
func (g *Generator) denialRisk(profile *refdata.OrganizationProfile, payerType, status string) float64 {
	var risk float64
	switch status {
	case claims.StatusDenied, claims.StatusRejected, claims.StatusAppealed:
		risk = 0.70 + g.src.Float64()*0.25
	case claims.StatusPaid, claims.StatusClosed:
		risk = 0.02 + g.src.Float64()*0.10
	case claims.StatusPending:
		risk = 0.30 + g.src.Float64()*0.35
	default:
		risk = profile.BaseDenialRate + g.src.Float64()*0.20
	}
	switch payerType {
	case refdata.PayerWorkersComp:
		risk += 0.10
	case refdata.PayerMedicaid:
		risk -= 0.05
	}
	if risk < 0 {
		risk = 0
	}
	if risk > 1 {
		risk = 1
	}
	return risk
}

var riskFactorText = map[string]string{
	"eligibility":              "Coverage gaps seen for this payer",
	"authorization":            "Prior authorization frequently missing",
	"medical_necessity":        "Payer scrutinizes medical necessity documentation",
	"coding_error":             "Elevated coding error rate in this procedure mix",
	"duplicate":                "Duplicate submissions flagged for this provider",
	"timely_filing":            "Approaching the payer filing deadline",
	"coordination_of_benefits": "Coordination of benefits unresolved",
	"missing_information":      "Documentation gaps in recent submissions",
	"non_covered_service":      "Service frequently ruled non-covered",
	"bundling":                 "Procedure pair subject to bundling edits",
	"credentialing":            "Provider credentialing recently changed",
}

// riskFactors picks 1-3 distinct narrative factors, preferring the
// organization's dominant denial categories and falling back to the generic
// pool.
func (g *Generator) riskFactors(profile *refdata.OrganizationProfile) []string {
	n := 1 + sampling.IntN(g.src, 3)
	cats, weights := profile.CategoryWeights()

	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for attempts := 0; len(out) < n && attempts < 3*n; attempts++ {
		var text string
		if sampling.Bernoulli(g.src, 0.7) {
			cat, err := sampling.WeightedChoice(g.src, cats, weights)
			if err != nil {
				continue
			}
			text = riskFactorText[cat]
		} else {
			text = refdata.GenericRiskFactors[sampling.IntN(g.src, len(refdata.GenericRiskFactors))]
		}
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return out
}

var highDollarThreshold = decimal.NewFromInt(10000)
var midDollarThreshold = decimal.NewFromInt(5000)

// claimPriority triages a claim for the worklist. Denied or rejected
// high-dollar claims are critical; otherwise priority follows denial risk
// and charge size.
func claimPriority(status string, risk float64, charge decimal.Decimal) string {
	deniedLike := status == claims.StatusDenied || status == claims.StatusRejected
	switch {
	case deniedLike && charge.GreaterThan(highDollarThreshold):
		return claims.PriorityCritical
	case deniedLike, status == claims.StatusPending && risk > 0.7:
		return claims.PriorityHigh
	case risk > 0.5, charge.GreaterThan(midDollarThreshold):
		return claims.PriorityMedium
	default:
		return claims.PriorityLow
	}
}
