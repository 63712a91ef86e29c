// Package lifecycle advances persisted claims through the adjudication
// state machine. The sweep is the only writer that mutates claim statuses
// after seeding; each pass moves a claim at most one transition.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/denials"
	"github.com/revcycle/revcycle/internal/domain/payments"
	"github.com/revcycle/revcycle/internal/domain/worklist"
	"github.com/revcycle/revcycle/internal/sim/generate"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// Transition timing gates, in days since submission.
const (
	acknowledgeAfterDays = 1
	pendingAfterDays     = 2
	adjudicateAfterDays  = 14
)

// appealWindowDays is how long after a denial is received the sweep will
// still consider appealing it.
const appealWindowDays = 30

// Probabilities are the per-pass transition draws. A claim whose age gate
// has passed still only moves when its draw succeeds, so claims linger in
// intermediate statuses the way real adjudication queues do.
type Probabilities struct {
	Submit      float64 // ready_to_submit -> submitted
	Acknowledge float64 // submitted -> acknowledged, once past the age gate
	Pend        float64 // acknowledged -> pending
	DenyScale   float64 // multiplied into the profile's base denial rate
	Pay         float64 // pending -> paid, when not denied this pass
	Appeal      float64 // denied -> appealed, inside the window
}

// DefaultProbabilities returns the draws used on a daily sweep cadence.
func DefaultProbabilities() Probabilities {
	return Probabilities{
		Submit:      0.85,
		Acknowledge: 0.90,
		Pend:        0.90,
		DenyScale:   0.60,
		Pay:         0.35,
		Appeal:      0.25,
	}
}

// activeStatuses are the claim statuses the sweep examines.
var activeStatuses = []string{
	claims.StatusReadyToSubmit, claims.StatusSubmitted,
	claims.StatusAcknowledged, claims.StatusPending, claims.StatusDenied,
}

// Repos bundles the repositories the engine writes through.
type Repos struct {
	Claims      claims.ClaimRepository
	LineItems   claims.LineItemRepository
	Denials     denials.DenialRepository
	Appeals     denials.AppealRepository
	Payments    payments.PaymentRepository
	Adjustments payments.AdjustmentRepository
	Tasks       worklist.TaskRepository
}

// Engine runs lifecycle sweeps for one randomness source. Not safe for
// concurrent use.
type Engine struct {
	repos Repos
	gen   *generate.Generator
	src   sampling.Source
	probs Probabilities
	log   zerolog.Logger
	now   func() time.Time
}

// New returns an Engine drawing from src with the default transition
// probabilities.
func New(repos Repos, src sampling.Source, log zerolog.Logger) *Engine {
	return &Engine{
		repos: repos,
		gen:   generate.New(src),
		src:   src,
		probs: DefaultProbabilities(),
		log:   log,
		now:   time.Now,
	}
}

// WithClock overrides the engine's clock.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithProbabilities overrides the engine's transition draws.
func (e *Engine) WithProbabilities(p Probabilities) *Engine {
	e.probs = p
	return e
}

// SweepResult summarizes one pass.
type SweepResult struct {
	Examined    int            `json:"examined"`
	Transitions map[string]int `json:"transitions"`
}

// Sweep examines up to limit active claims for the organization and applies
// at most one transition to each.
func (e *Engine) Sweep(ctx context.Context, profile *refdata.OrganizationProfile, orgID uuid.UUID, limit int) (*SweepResult, error) {
	list, err := e.repos.Claims.ListByStatus(ctx, orgID, activeStatuses, limit)
	if err != nil {
		return nil, fmt.Errorf("list active claims: %w", err)
	}

	result := &SweepResult{Transitions: map[string]int{}}
	asOf := e.now()
	for _, c := range list {
		result.Examined++
		next, err := e.advance(ctx, profile, c, asOf)
		if err != nil {
			return nil, fmt.Errorf("advance claim %s: %w", c.ClaimNumber, err)
		}
		if next != "" {
			result.Transitions[c.Status+":"+next]++
		}
	}

	e.log.Info().
		Str("org", profile.Code).
		Int("examined", result.Examined).
		Interface("transitions", result.Transitions).
		Msg("lifecycle sweep complete")
	return result, nil
}

// advance applies the single transition the claim is due for, if any, and
// returns the new status.
func (e *Engine) advance(ctx context.Context, profile *refdata.OrganizationProfile, c *claims.Claim, asOf time.Time) (string, error) {
	if claims.Terminal(c.Status) {
		return "", nil
	}

	switch c.Status {
	case claims.StatusReadyToSubmit:
		if !sampling.Bernoulli(e.src, e.probs.Submit) {
			return "", nil
		}
		return claims.StatusSubmitted, e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusSubmitted, nil)

	case claims.StatusSubmitted:
		if ageDays(c, asOf) < acknowledgeAfterDays || !sampling.Bernoulli(e.src, e.probs.Acknowledge) {
			return "", nil
		}
		return claims.StatusAcknowledged, e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusAcknowledged, nil)

	case claims.StatusAcknowledged:
		if ageDays(c, asOf) < pendingAfterDays || !sampling.Bernoulli(e.src, e.probs.Pend) {
			return "", nil
		}
		return claims.StatusPending, e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusPending, nil)

	case claims.StatusPending:
		if ageDays(c, asOf) < adjudicateAfterDays {
			return "", nil
		}
		if sampling.Bernoulli(e.src, profile.BaseDenialRate*e.probs.DenyScale) {
			return claims.StatusDenied, e.deny(ctx, profile, c, asOf)
		}
		if sampling.Bernoulli(e.src, e.probs.Pay) {
			return claims.StatusPaid, e.pay(ctx, c, asOf)
		}
		return "", nil

	case claims.StatusDenied:
		return e.maybeAppeal(ctx, c, asOf)
	}
	return "", nil
}

// ageDays measures the claim's age from submission, falling back to the
// date of service for claims that never recorded one.
func ageDays(c *claims.Claim, asOf time.Time) int {
	ref := c.ServiceDate
	if c.SubmittedAt != nil {
		ref = *c.SubmittedAt
	}
	return int(asOf.Sub(ref).Hours() / 24)
}

// deny moves a pending claim to denied and materializes the denial record
// and its worklist tasks.
func (e *Engine) deny(ctx context.Context, profile *refdata.OrganizationProfile, c *claims.Claim, asOf time.Time) error {
	if err := e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusDenied, nil); err != nil {
		return err
	}
	c.Status = claims.StatusDenied

	bundle, ok, err := e.gen.Denial(profile, c, asOf)
	if err != nil {
		return fmt.Errorf("materialize denial: %w", err)
	}
	if !ok {
		return fmt.Errorf("no denial distribution for claim %s in status %s", c.ClaimNumber, c.Status)
	}
	// A sweep denial is always fresh work, regardless of what the
	// distribution drew.
	window := daysBetween(bundle.Denial.ReceivedAt, bundle.Denial.AppealDeadline)
	bundle.Denial.Status = denials.StatusNew
	bundle.Denial.ReceivedAt = asOf
	bundle.Denial.AppealDeadline = asOf.AddDate(0, 0, window)
	bundle.Appeal = nil

	if err := e.repos.Denials.Create(ctx, bundle.Denial); err != nil {
		return fmt.Errorf("create denial: %w", err)
	}
	if tasks := e.gen.Tasks(c, bundle, nil, asOf); len(tasks) > 0 {
		if err := e.repos.Tasks.CreateBatch(ctx, tasks); err != nil {
			return fmt.Errorf("create denial tasks: %w", err)
		}
	}
	return nil
}

// pay settles a pending claim as paid: totals are derived from the payer's
// allowed-ratio range, then the remittance records are materialized.
func (e *Engine) pay(ctx context.Context, c *claims.Claim, asOf time.Time) error {
	allowed := generate.ClampedAllowedAmount(e.src, c.ChargeAmount, c.PayerType)
	ratio, _ := refdata.PayoutRatio(claims.StatusPaid)
	paid := allowed.Mul(decimal.NewFromFloat(ratio)).Round(2)
	totals := &claims.SettledTotals{
		AllowedAmount:         allowed,
		PaidAmount:            paid,
		AdjustmentAmount:      c.ChargeAmount.Sub(allowed),
		PatientResponsibility: allowed.Sub(paid),
	}
	if err := e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusPaid, totals); err != nil {
		return err
	}
	c.Status = claims.StatusPaid
	c.Totals = totals

	lines, err := e.repos.LineItems.ListByClaim(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("list line items: %w", err)
	}
	remit, err := e.gen.Payments(c, lines, asOf)
	if err != nil {
		return fmt.Errorf("materialize remittance: %w", err)
	}
	for _, p := range remit.Payments {
		if err := e.repos.Payments.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
	}
	if len(remit.Adjustments) > 0 {
		if err := e.repos.Adjustments.CreateBatch(ctx, remit.Adjustments); err != nil {
			return fmt.Errorf("create adjustments: %w", err)
		}
	}
	return nil
}

// maybeAppeal escalates a denied claim to appealed when its denial is still
// new, inside the appeal window, and the appeal draw succeeds. The draw is a
// fixed reduced probability; not every winnable denial is worked.
func (e *Engine) maybeAppeal(ctx context.Context, c *claims.Claim, asOf time.Time) (string, error) {
	d, err := e.repos.Denials.GetByClaim(ctx, c.ID)
	if err != nil {
		return "", fmt.Errorf("load denial: %w", err)
	}
	if d == nil || d.Status != denials.StatusNew {
		return "", nil
	}
	if daysBetween(d.ReceivedAt, asOf) > appealWindowDays {
		return "", nil
	}
	if !sampling.Bernoulli(e.src, e.probs.Appeal) {
		return "", nil
	}

	if err := e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusAppealed, nil); err != nil {
		return "", err
	}
	if err := e.repos.Denials.UpdateStatus(ctx, d.ID, denials.StatusAppealing); err != nil {
		return "", fmt.Errorf("update denial status: %w", err)
	}
	appeal := &denials.Appeal{
		ID:          uuid.New(),
		DenialID:    d.ID,
		ClaimID:     c.ID,
		Level:       1,
		Type:        denials.TypeForLevel(1),
		Status:      denials.AppealStatusDraft,
		SubmittedAt: asOf,
		CreatedAt:   asOf,
	}
	if err := e.repos.Appeals.Create(ctx, appeal); err != nil {
		return "", fmt.Errorf("create appeal: %w", err)
	}
	return claims.StatusAppealed, nil
}

// SubmitReady flushes up to limit ready_to_submit claims to submitted and
// returns how many moved.
func (e *Engine) SubmitReady(ctx context.Context, orgID uuid.UUID, limit int) (int, error) {
	list, err := e.repos.Claims.ListByStatus(ctx, orgID, []string{claims.StatusReadyToSubmit}, limit)
	if err != nil {
		return 0, fmt.Errorf("list ready claims: %w", err)
	}
	for i, c := range list {
		if err := e.repos.Claims.UpdateStatus(ctx, c.ID, claims.StatusSubmitted, nil); err != nil {
			return i, fmt.Errorf("submit claim %s: %w", c.ClaimNumber, err)
		}
	}
	return len(list), nil
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
