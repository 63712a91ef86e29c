package generate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/denials"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// DenialBundle is a denial with its appeal, when the denial's status calls
// for one.
type DenialBundle struct {
	Denial *denials.Denial
	Appeal *denials.Appeal
}

// Appeal level cascade: most appeals stop at reconsideration, a minority
// escalate to a formal appeal, the rest reach external review.
const (
	levelOneShare = 0.85
	levelTwoShare = 0.70
)

// decidedAppealShare is the fraction of appeals that already carry a
// decision when generated.
const decidedAppealShare = 0.40

var suggestedActions = map[string]string{
	denials.CategoryEligibility:        "Verify coverage dates and resubmit with corrected eligibility",
	denials.CategoryAuthorization:      "Obtain retro-authorization and attach to appeal",
	denials.CategoryMedicalNecessity:   "Attach clinical documentation supporting necessity",
	denials.CategoryCodingError:        "Review coding against payer policy and rebill",
	denials.CategoryDuplicate:          "Confirm original claim disposition before resubmitting",
	denials.CategoryTimelyFiling:       "File appeal with proof of timely submission",
	denials.CategoryCoordination:       "Request updated coordination of benefits from the patient",
	denials.CategoryMissingInformation: "Supply the requested records and resubmit",
	denials.CategoryNonCoveredService:  "Bill patient or appeal with coverage policy citation",
	denials.CategoryBundling:           "Review NCCI edits and append the appropriate modifier",
	denials.CategoryCredentialing:      "Confirm provider enrollment effective dates with the payer",
}

// Denial generates the denial bundle for a claim whose status produces one
// (denied, rejected, or appealed). ok is false for any other status.
func (g *Generator) Denial(profile *refdata.OrganizationProfile, claim *claims.Claim, asOf time.Time) (*DenialBundle, bool, error) {
	statusNames, statusWeights, ok := refdata.DenialStatusDistribution(claim.Status)
	if !ok {
		return nil, false, nil
	}
	status, err := sampling.WeightedChoice(g.src, statusNames, statusWeights)
	if err != nil {
		return nil, false, fmt.Errorf("draw denial status: %w", err)
	}

	cats, weights := profile.CategoryWeights()
	category, err := sampling.WeightedChoice(g.src, cats, weights)
	if err != nil {
		return nil, false, fmt.Errorf("draw denial category for %s: %w", profile.Code, err)
	}

	code := g.denialCode(category)

	receivedAt := claim.ServiceDate.AddDate(0, 0, 14+sampling.IntN(g.src, 32))
	deadlineDays := 60
	if code.OverturnLikelihood > 0.5 {
		deadlineDays = 180
	}

	// Jitter the code's base likelihood per denial, kept inside (0,1).
	likelihood := code.OverturnLikelihood + sampling.Between(g.src, -0.10, 0.10)
	if likelihood < 0.05 {
		likelihood = 0.05
	}
	if likelihood > 0.95 {
		likelihood = 0.95
	}

	d := &denials.Denial{
		ID:                 uuid.New(),
		ClaimID:            claim.ID,
		OrgID:              claim.OrgID,
		Category:           category,
		Code:               code.Code,
		Description:        code.Description,
		Status:             status,
		Amount:             claim.ChargeAmount,
		ReceivedAt:         receivedAt,
		AppealDeadline:     receivedAt.AddDate(0, 0, deadlineDays),
		SuggestedAction:    suggestedActions[category],
		OverturnLikelihood: likelihood,
		SimilarDenialCount: 3 + sampling.IntN(g.src, 40),
		CreatedAt:          asOf,
		UpdatedAt:          asOf,
	}

	bundle := &DenialBundle{Denial: d}
	if denials.AppealEligible(status) {
		bundle.Appeal = g.appeal(d, claim, asOf)
	}
	return bundle, true, nil
}

// denialCode draws a reason code from the category's pool, or uniformly from
// the full pool when the category has none.
func (g *Generator) denialCode(category string) refdata.DenialCode {
	pool := refdata.DenialCodesForCategory(category)
	if len(pool) == 0 {
		pool = refdata.DenialCodes
	}
	return pool[sampling.IntN(g.src, len(pool))]
}

// appeal builds the appeal for an appeal-eligible denial. Decided appeals
// carry an outcome and push the denial's status to overturned or upheld.
func (g *Generator) appeal(d *denials.Denial, claim *claims.Claim, asOf time.Time) *denials.Appeal {
	level := 3
	if sampling.Bernoulli(g.src, levelOneShare) {
		level = 1
	} else if sampling.Bernoulli(g.src, levelTwoShare) {
		level = 2
	}

	submittedAt := d.ReceivedAt.AddDate(0, 0, 3+sampling.IntN(g.src, 12))
	a := &denials.Appeal{
		ID:          uuid.New(),
		DenialID:    d.ID,
		ClaimID:     claim.ID,
		Level:       level,
		Type:        denials.TypeForLevel(level),
		Status:      denials.AppealStatusSubmitted,
		SubmittedAt: submittedAt,
		CreatedAt:   asOf,
	}
	if d.Status == denials.StatusAppealing {
		a.Status = denials.AppealStatusDraft
		return a
	}

	if sampling.Bernoulli(g.src, decidedAppealShare) {
		g.decideAppeal(a, d, claim, submittedAt)
	}
	return a
}

func (g *Generator) decideAppeal(a *denials.Appeal, d *denials.Denial, claim *claims.Claim, submittedAt time.Time) {
	outcome, err := sampling.WeightedChoice(g.src, refdata.AppealOutcomeNames, refdata.AppealOutcomeWeights)
	if err != nil {
		return
	}
	decidedAt := submittedAt.AddDate(0, 0, 14+sampling.IntN(g.src, 47))
	a.Status = denials.AppealStatusDecided
	a.Outcome = &outcome
	a.DecidedAt = &decidedAt

	switch outcome {
	case denials.OutcomeOverturned:
		recovered := claim.ChargeAmount
		a.RecoveredAmount = &recovered
		notes := "Appeal granted; payer reprocessed the claim for payment"
		a.ResponseNotes = &notes
		d.Status = denials.StatusOverturned
	case denials.OutcomePartiallyOverturned:
		recovered := claim.ChargeAmount.Mul(decimal.NewFromFloat(sampling.Between(g.src, 0.4, 0.7))).Round(2)
		a.RecoveredAmount = &recovered
		notes := "Appeal partially granted; payer allowed a portion of the charges"
		a.ResponseNotes = &notes
		d.Status = denials.StatusOverturned
	case denials.OutcomeUpheld:
		notes := "Appeal denied; original determination stands"
		a.ResponseNotes = &notes
		d.Status = denials.StatusUpheld
	}
}
