package generate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/denials"
	"github.com/revcycle/revcycle/internal/domain/payments"
	"github.com/revcycle/revcycle/internal/domain/worklist"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// Task generation probabilities.
const (
	eligibilityTaskRate  = 0.80
	codingReviewTaskRate = 0.70
	patientContactRate   = 0.30
)

// patientContactFloor is the minimum unpaid patient balance that warrants a
// contact task.
var patientContactFloor = decimal.NewFromInt(100)

// Tasks derives the worklist entries a claim warrants at generation time.
// denial and remit may be nil when the claim produced neither.
func (g *Generator) Tasks(claim *claims.Claim, denial *DenialBundle, remit *PaymentBundle, asOf time.Time) []*worklist.Task {
	var out []*worklist.Task

	if denial != nil {
		out = append(out, g.denialTasks(claim, denial.Denial, asOf)...)
	}
	if t := g.followUpTask(claim, asOf); t != nil {
		out = append(out, t)
	}
	if t := g.patientContactTask(claim, remit, asOf); t != nil {
		out = append(out, t)
	}
	return out
}

// denialTasks always opens a review task for the denial, plus a deadline
// task when the appeal window is about to close and category-specific
// follow-ups.
func (g *Generator) denialTasks(claim *claims.Claim, d *denials.Denial, asOf time.Time) []*worklist.Task {
	var out []*worklist.Task

	review := g.task(claim, worklist.CategoryDenialReview,
		fmt.Sprintf("Review %s denial on %s", d.Category, claim.ClaimNumber),
		fmt.Sprintf("%s (%s). Suggested action: %s", d.Description, d.Code, d.SuggestedAction),
		denialReviewPriority(d), asOf)
	review.DenialID = &d.ID
	due := d.AppealDeadline
	review.DueDate = &due
	confidence := sampling.Between(g.src, 0.60, 0.95)
	review.Confidence = &confidence
	reasoning := fmt.Sprintf("Similar %s denials overturned at %.0f%% for this payer", d.Category, d.OverturnLikelihood*100)
	review.Reasoning = &reasoning
	score := d.OverturnLikelihood * claim.DenialRisk
	review.Score = &score
	out = append(out, review)

	// Only un-appealed denials get a deadline reminder.
	if daysOut := daysBetween(asOf, d.AppealDeadline); daysOut >= 1 && daysOut <= 14 &&
		!denials.AppealEligible(d.Status) {
		priority := worklist.PriorityHigh
		if daysOut <= 7 {
			priority = worklist.PriorityCritical
		}
		t := g.task(claim, worklist.CategoryAppealDeadline,
			fmt.Sprintf("Appeal deadline in %d days for %s", daysOut, claim.ClaimNumber),
			fmt.Sprintf("Appeal must be filed by %s to preserve recovery of the denied amount", d.AppealDeadline.Format("2006-01-02")),
			priority, asOf)
		t.DenialID = &d.ID
		t.DueDate = &due
		out = append(out, t)
	}

	switch d.Category {
	case denials.CategoryEligibility:
		if sampling.Bernoulli(g.src, eligibilityTaskRate) {
			t := g.task(claim, worklist.CategoryEligibility,
				fmt.Sprintf("Verify eligibility for %s", claim.ClaimNumber),
				"Confirm coverage was active on the date of service before resubmission",
				worklist.PriorityMedium, asOf)
			t.DenialID = &d.ID
			t.PatientID = &claim.PatientID
			out = append(out, t)
		}
	case denials.CategoryCodingError, denials.CategoryBundling:
		if sampling.Bernoulli(g.src, codingReviewTaskRate) {
			t := g.task(claim, worklist.CategoryCodingReview,
				fmt.Sprintf("Coding review for %s", claim.ClaimNumber),
				"Audit procedure and diagnosis coding against payer policy before rebilling",
				worklist.PriorityMedium, asOf)
			t.DenialID = &d.ID
			out = append(out, t)
		}
	}
	return out
}

// followUpTask opens a follow-up for pending claims that have sat for 30
// days or more; the probability ramps to certainty at 60 days.
func (g *Generator) followUpTask(claim *claims.Claim, asOf time.Time) *worklist.Task {
	if claim.Status != claims.StatusPending {
		return nil
	}
	age := daysBetween(claim.ServiceDate, asOf)
	if age < 30 {
		return nil
	}
	p := float64(age-30) / 30
	if !sampling.Bernoulli(g.src, p) {
		return nil
	}
	priority := worklist.PriorityMedium
	if claim.DenialRisk > 0.7 {
		priority = worklist.PriorityHigh
	}
	t := g.task(claim, worklist.CategoryClaimFollowUp,
		fmt.Sprintf("Follow up on %s pending %d days", claim.ClaimNumber, age),
		"No adjudication response received; contact the payer for claim status",
		priority, asOf)
	due := claim.ServiceDate.AddDate(0, 0, 60)
	t.DueDate = &due
	return t
}

// patientContactTask opens a contact task when a meaningful patient balance
// remains after any patient payments.
func (g *Generator) patientContactTask(claim *claims.Claim, remit *PaymentBundle, asOf time.Time) *worklist.Task {
	if claim.Totals == nil {
		return nil
	}
	balance := claim.Totals.PatientResponsibility
	if remit != nil {
		for _, p := range remit.Payments {
			if p.Type == payments.TypePatient {
				balance = balance.Sub(p.Amount)
			}
		}
	}
	if !balance.GreaterThan(patientContactFloor) {
		return nil
	}
	if !sampling.Bernoulli(g.src, patientContactRate) {
		return nil
	}
	t := g.task(claim, worklist.CategoryPatientContact,
		fmt.Sprintf("Collect patient balance on %s", claim.ClaimNumber),
		fmt.Sprintf("Outstanding patient responsibility of %s; send statement or call", balance.StringFixed(2)),
		worklist.PriorityLow, asOf)
	t.PatientID = &claim.PatientID
	return t
}

func (g *Generator) task(claim *claims.Claim, category, title, description, priority string, asOf time.Time) *worklist.Task {
	claimID := claim.ID
	return &worklist.Task{
		ID:          uuid.New(),
		OrgID:       claim.OrgID,
		ClaimID:     &claimID,
		Category:    category,
		Priority:    priority,
		Status:      worklist.StatusOpen,
		Title:       title,
		Description: description,
		CreatedAt:   asOf,
		UpdatedAt:   asOf,
	}
}

// denialReviewPriority mirrors the claim triage rule for the denial itself.
func denialReviewPriority(d *denials.Denial) string {
	switch {
	case d.Amount.GreaterThan(highDollarThreshold):
		return worklist.PriorityCritical
	case d.OverturnLikelihood > 0.6:
		return worklist.PriorityHigh
	default:
		return worklist.PriorityMedium
	}
}
