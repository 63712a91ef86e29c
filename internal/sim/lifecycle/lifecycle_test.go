package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/denials"
	"github.com/revcycle/revcycle/internal/domain/payments"
	"github.com/revcycle/revcycle/internal/domain/worklist"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

var sweepNow = time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC) // a Monday

// certainDraws makes every eligible transition fire, so tests exercise the
// age gates and materialization without sampling noise.
func certainDraws() Probabilities {
	return Probabilities{Submit: 1, Acknowledge: 1, Pend: 1, DenyScale: 1, Pay: 1, Appeal: 1}
}

func sweepProfile(denialRate float64) *refdata.OrganizationProfile {
	return &refdata.OrganizationProfile{
		Code:           "TESTORG",
		Specialty:      "multispecialty",
		BaseDenialRate: denialRate,
		DenialCategories: []refdata.CategoryWeight{
			{Category: denials.CategoryAuthorization, Weight: 0.5},
			{Category: denials.CategoryEligibility, Weight: 0.5},
		},
	}
}

// In-memory repositories. Slices keep insertion order so sweeps are
// deterministic.

type memClaims struct{ store []*claims.Claim }

func (m *memClaims) Create(_ context.Context, c *claims.Claim) error {
	m.store = append(m.store, c)
	return nil
}
func (m *memClaims) GetByID(_ context.Context, id uuid.UUID) (*claims.Claim, error) {
	for _, c := range m.store {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memClaims) UpdateStatus(_ context.Context, id uuid.UUID, status string, totals *claims.SettledTotals) error {
	for _, c := range m.store {
		if c.ID == id {
			c.Status = status
			if totals != nil {
				c.Totals = totals
			}
		}
	}
	return nil
}
func (m *memClaims) ListByStatus(_ context.Context, orgID uuid.UUID, statuses []string, limit int) ([]*claims.Claim, error) {
	want := map[string]bool{}
	for _, s := range statuses {
		want[s] = true
	}
	var out []*claims.Claim
	for _, c := range m.store {
		if c.OrgID == orgID && want[c.Status] && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memClaims) CountByOrg(_ context.Context, orgID uuid.UUID) (int, error) {
	n := 0
	for _, c := range m.store {
		if c.OrgID == orgID {
			n++
		}
	}
	return n, nil
}
func (m *memClaims) DeleteAll(context.Context) error { m.store = nil; return nil }

type memLines struct{ store []*claims.LineItem }

func (m *memLines) CreateBatch(_ context.Context, items []*claims.LineItem) error {
	m.store = append(m.store, items...)
	return nil
}
func (m *memLines) ListByClaim(_ context.Context, claimID uuid.UUID) ([]*claims.LineItem, error) {
	var out []*claims.LineItem
	for _, li := range m.store {
		if li.ClaimID == claimID {
			out = append(out, li)
		}
	}
	return out, nil
}
func (m *memLines) DeleteAll(context.Context) error { m.store = nil; return nil }

type memDenials struct{ store []*denials.Denial }

func (m *memDenials) Create(_ context.Context, d *denials.Denial) error {
	m.store = append(m.store, d)
	return nil
}
func (m *memDenials) GetByClaim(_ context.Context, claimID uuid.UUID) (*denials.Denial, error) {
	for _, d := range m.store {
		if d.ClaimID == claimID {
			return d, nil
		}
	}
	return nil, nil
}
func (m *memDenials) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for _, d := range m.store {
		if d.ID == id {
			d.Status = status
		}
	}
	return nil
}
func (m *memDenials) CountByOrg(_ context.Context, orgID uuid.UUID) (int, error) {
	n := 0
	for _, d := range m.store {
		if d.OrgID == orgID {
			n++
		}
	}
	return n, nil
}
func (m *memDenials) DeleteAll(context.Context) error { m.store = nil; return nil }

type memAppeals struct{ store []*denials.Appeal }

func (m *memAppeals) Create(_ context.Context, a *denials.Appeal) error {
	m.store = append(m.store, a)
	return nil
}
func (m *memAppeals) ListByDenial(_ context.Context, denialID uuid.UUID) ([]*denials.Appeal, error) {
	var out []*denials.Appeal
	for _, a := range m.store {
		if a.DenialID == denialID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *memAppeals) DeleteAll(context.Context) error { m.store = nil; return nil }

type memPayments struct{ store []*payments.Payment }

func (m *memPayments) Create(_ context.Context, p *payments.Payment) error {
	m.store = append(m.store, p)
	return nil
}
func (m *memPayments) ListByClaim(_ context.Context, claimID uuid.UUID) ([]*payments.Payment, error) {
	var out []*payments.Payment
	for _, p := range m.store {
		if p.ClaimID == claimID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memPayments) DeleteAll(context.Context) error { m.store = nil; return nil }

type memAdjustments struct{ store []*payments.Adjustment }

func (m *memAdjustments) CreateBatch(_ context.Context, adjs []*payments.Adjustment) error {
	m.store = append(m.store, adjs...)
	return nil
}
func (m *memAdjustments) ListByClaim(_ context.Context, claimID uuid.UUID) ([]*payments.Adjustment, error) {
	var out []*payments.Adjustment
	for _, a := range m.store {
		if a.ClaimID == claimID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *memAdjustments) DeleteAll(context.Context) error { m.store = nil; return nil }

type memTasks struct{ store []*worklist.Task }

func (m *memTasks) CreateBatch(_ context.Context, tasks []*worklist.Task) error {
	m.store = append(m.store, tasks...)
	return nil
}
func (m *memTasks) ListByOrg(_ context.Context, orgID uuid.UUID, status string, limit int) ([]*worklist.Task, error) {
	var out []*worklist.Task
	for _, t := range m.store {
		if t.OrgID == orgID && (status == "" || t.Status == status) && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}
func (m *memTasks) DeleteAll(context.Context) error { m.store = nil; return nil }

type fixture struct {
	engine      *Engine
	claims      *memClaims
	lines       *memLines
	denials     *memDenials
	appeals     *memAppeals
	payments    *memPayments
	adjustments *memAdjustments
	tasks       *memTasks
}

func newFixture(seed int64) *fixture {
	f := &fixture{
		claims:      &memClaims{},
		lines:       &memLines{},
		denials:     &memDenials{},
		appeals:     &memAppeals{},
		payments:    &memPayments{},
		adjustments: &memAdjustments{},
		tasks:       &memTasks{},
	}
	repos := Repos{
		Claims:      f.claims,
		LineItems:   f.lines,
		Denials:     f.denials,
		Appeals:     f.appeals,
		Payments:    f.payments,
		Adjustments: f.adjustments,
		Tasks:       f.tasks,
	}
	f.engine = New(repos, sampling.NewSource(seed), zerolog.Nop()).
		WithClock(func() time.Time { return sweepNow })
	return f
}

func (f *fixture) addClaim(orgID uuid.UUID, status string, submittedDaysAgo int, charge int64) *claims.Claim {
	submitted := sweepNow.AddDate(0, 0, -submittedDaysAgo)
	c := &claims.Claim{
		ID:           uuid.New(),
		OrgID:        orgID,
		PatientID:    uuid.New(),
		CoverageID:   uuid.New(),
		ClaimNumber:  "TESTORG-2026-00000001",
		PayerType:    refdata.PayerCommercial,
		Status:       status,
		Priority:     claims.PriorityLow,
		ServiceDate:  submitted.AddDate(0, 0, -3),
		SubmittedAt:  &submitted,
		ChargeAmount: decimal.NewFromInt(charge),
	}
	f.claims.store = append(f.claims.store, c)
	return c
}

func TestSweep_TimedTransitions(t *testing.T) {
	f := newFixture(1)
	f.engine.WithProbabilities(certainDraws())
	orgID := uuid.New()
	// Denial rate zero: aged pending claims always settle as paid.
	profile := sweepProfile(0)

	ready := f.addClaim(orgID, claims.StatusReadyToSubmit, 0, 500)
	freshSubmitted := f.addClaim(orgID, claims.StatusSubmitted, 0, 500)
	agedSubmitted := f.addClaim(orgID, claims.StatusSubmitted, 2, 500)
	acknowledged := f.addClaim(orgID, claims.StatusAcknowledged, 3, 500)
	freshPending := f.addClaim(orgID, claims.StatusPending, 5, 500)
	agedPending := f.addClaim(orgID, claims.StatusPending, 20, 500)

	res, err := f.engine.Sweep(context.Background(), profile, orgID, 100)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Examined != 6 {
		t.Errorf("examined %d claims, want 6", res.Examined)
	}

	cases := []struct {
		name  string
		claim *claims.Claim
		want  string
	}{
		{"ready submits immediately", ready, claims.StatusSubmitted},
		{"fresh submission waits", freshSubmitted, claims.StatusSubmitted},
		{"aged submission acknowledged", agedSubmitted, claims.StatusAcknowledged},
		{"acknowledged goes pending", acknowledged, claims.StatusPending},
		{"fresh pending waits", freshPending, claims.StatusPending},
		{"aged pending settles", agedPending, claims.StatusPaid},
	}
	for _, c := range cases {
		if c.claim.Status != c.want {
			t.Errorf("%s: status = %s, want %s", c.name, c.claim.Status, c.want)
		}
	}
}

func TestSweep_EligibleClaimsCanLinger(t *testing.T) {
	f := newFixture(9)
	// Every draw fails: age-eligible claims hold their status this pass.
	f.engine.WithProbabilities(Probabilities{})
	orgID := uuid.New()
	profile := sweepProfile(1)

	ready := f.addClaim(orgID, claims.StatusReadyToSubmit, 0, 500)
	submitted := f.addClaim(orgID, claims.StatusSubmitted, 5, 500)
	acknowledged := f.addClaim(orgID, claims.StatusAcknowledged, 5, 500)
	pending := f.addClaim(orgID, claims.StatusPending, 20, 500)

	res, err := f.engine.Sweep(context.Background(), profile, orgID, 100)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(res.Transitions) != 0 {
		t.Fatalf("failed draws still transitioned claims: %v", res.Transitions)
	}
	held := []struct {
		name  string
		claim *claims.Claim
		want  string
	}{
		{"ready stays ready", ready, claims.StatusReadyToSubmit},
		{"submitted stays submitted", submitted, claims.StatusSubmitted},
		{"acknowledged stays acknowledged", acknowledged, claims.StatusAcknowledged},
		{"aged pending stays pending", pending, claims.StatusPending},
	}
	for _, c := range held {
		if c.claim.Status != c.want {
			t.Errorf("%s: status = %s, want %s", c.name, c.claim.Status, c.want)
		}
	}
	if len(f.denials.store) != 0 || len(f.payments.store) != 0 {
		t.Error("lingering claims materialized adjudication records")
	}
}

func TestSweep_OneTransitionPerPass(t *testing.T) {
	f := newFixture(2)
	f.engine.WithProbabilities(certainDraws())
	orgID := uuid.New()
	// Old enough to clear every gate; still only one hop per sweep.
	c := f.addClaim(orgID, claims.StatusSubmitted, 30, 500)

	if _, err := f.engine.Sweep(context.Background(), sweepProfile(0), orgID, 100); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if c.Status != claims.StatusAcknowledged {
		t.Fatalf("after one sweep status = %s, want acknowledged", c.Status)
	}
}

func TestSweep_TerminalClaimsUntouched(t *testing.T) {
	f := newFixture(3)
	orgID := uuid.New()
	for _, s := range []string{claims.StatusPaid, claims.StatusClosed, claims.StatusWrittenOff, claims.StatusRejected} {
		f.addClaim(orgID, s, 60, 500)
	}

	res, err := f.engine.Sweep(context.Background(), sweepProfile(1), orgID, 100)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Examined != 0 {
		t.Errorf("sweep examined %d terminal claims", res.Examined)
	}
	if len(res.Transitions) != 0 {
		t.Errorf("sweep transitioned terminal claims: %v", res.Transitions)
	}
}

func TestSweep_DenialMaterializesRecords(t *testing.T) {
	f := newFixture(4)
	f.engine.WithProbabilities(certainDraws())
	orgID := uuid.New()
	// Denial rate one: aged pending claims always deny.
	profile := sweepProfile(1)
	c := f.addClaim(orgID, claims.StatusPending, 20, 12000)

	if _, err := f.engine.Sweep(context.Background(), profile, orgID, 100); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if c.Status != claims.StatusDenied {
		t.Fatalf("claim status = %s, want denied", c.Status)
	}

	d, _ := f.denials.GetByClaim(context.Background(), c.ID)
	if d == nil {
		t.Fatal("no denial record created")
	}
	if d.Status != denials.StatusNew {
		t.Errorf("denial status = %s, want new", d.Status)
	}
	if !d.ReceivedAt.Equal(sweepNow) {
		t.Errorf("denial received %v, want sweep time", d.ReceivedAt)
	}
	if !d.Amount.Equal(c.ChargeAmount) {
		t.Errorf("denial amount = %s, want %s", d.Amount, c.ChargeAmount)
	}

	var review *worklist.Task
	for _, task := range f.tasks.store {
		if task.Category == worklist.CategoryDenialReview && task.DenialID != nil && *task.DenialID == d.ID {
			review = task
		}
	}
	if review == nil {
		t.Fatal("denial produced no review task")
	}
	if review.Priority != worklist.PriorityCritical {
		t.Errorf("high-dollar denial review priority = %s, want critical", review.Priority)
	}
}

func TestSweep_PaymentMaterializesRemittance(t *testing.T) {
	f := newFixture(5)
	f.engine.WithProbabilities(certainDraws())
	orgID := uuid.New()
	c := f.addClaim(orgID, claims.StatusPending, 20, 1000)
	f.lines.store = append(f.lines.store, &claims.LineItem{
		ID: uuid.New(), ClaimID: c.ID, LineNumber: 1,
		ProcedureCode: "99213", Units: 1,
		ChargeAmount: decimal.NewFromInt(1000), Status: "submitted",
	})

	if _, err := f.engine.Sweep(context.Background(), sweepProfile(0), orgID, 100); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if c.Status != claims.StatusPaid {
		t.Fatalf("claim status = %s, want paid", c.Status)
	}
	if c.Totals == nil {
		t.Fatal("paid claim has no totals")
	}

	// Commercial allowed ratio is 0.50-0.80; payout ratio for paid is 0.80.
	min, max := decimal.NewFromInt(500), decimal.NewFromInt(800)
	if c.Totals.AllowedAmount.LessThan(min) || c.Totals.AllowedAmount.GreaterThan(max) {
		t.Errorf("allowed %s outside commercial range [%s,%s]", c.Totals.AllowedAmount, min, max)
	}
	wantPaid := c.Totals.AllowedAmount.Mul(decimal.NewFromFloat(0.80)).Round(2)
	if !c.Totals.PaidAmount.Equal(wantPaid) {
		t.Errorf("paid %s, want %s", c.Totals.PaidAmount, wantPaid)
	}

	pays, _ := f.payments.ListByClaim(context.Background(), c.ID)
	var insurance bool
	for _, p := range pays {
		if p.Type == payments.TypeInsurance && p.Amount.Equal(c.Totals.PaidAmount) {
			insurance = true
		}
	}
	if !insurance {
		t.Fatal("paid claim missing insurance payment matching totals")
	}

	adjs, _ := f.adjustments.ListByClaim(context.Background(), c.ID)
	contractual := decimal.Zero
	for _, a := range adjs {
		if a.GroupCode == payments.GroupContractual {
			contractual = contractual.Add(a.Amount)
		}
	}
	if !contractual.Equal(c.Totals.AdjustmentAmount) {
		t.Errorf("contractual adjustments %s != adjustment total %s", contractual, c.Totals.AdjustmentAmount)
	}
}

func TestSweep_AppealWindow(t *testing.T) {
	ctx := context.Background()

	// Inside the window with a sure-thing appeal draw: the claim appeals.
	f := newFixture(6)
	f.engine.WithProbabilities(certainDraws())
	orgID := uuid.New()
	c := f.addClaim(orgID, claims.StatusDenied, 40, 800)
	d := &denials.Denial{
		ID: uuid.New(), ClaimID: c.ID, OrgID: orgID,
		Category: denials.CategoryAuthorization, Code: "CO-197",
		Status: denials.StatusNew, Amount: c.ChargeAmount,
		ReceivedAt:         sweepNow.AddDate(0, 0, -5),
		AppealDeadline:     sweepNow.AddDate(0, 0, 55),
		OverturnLikelihood: 0.6,
	}
	f.denials.store = append(f.denials.store, d)

	if _, err := f.engine.Sweep(ctx, sweepProfile(0), orgID, 100); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if c.Status != claims.StatusAppealed {
		t.Fatalf("claim status = %s, want appealed", c.Status)
	}
	if d.Status != denials.StatusAppealing {
		t.Errorf("denial status = %s, want appealing", d.Status)
	}
	appeals, _ := f.appeals.ListByDenial(ctx, d.ID)
	if len(appeals) != 1 {
		t.Fatalf("%d appeals created, want 1", len(appeals))
	}
	if appeals[0].Level != 1 || appeals[0].Type != denials.TypeReconsideration {
		t.Errorf("appeal level/type = %d/%s, want 1/reconsideration", appeals[0].Level, appeals[0].Type)
	}

	// Outside the window: nothing moves even with a certain draw.
	f2 := newFixture(7)
	f2.engine.WithProbabilities(certainDraws())
	c2 := f2.addClaim(orgID, claims.StatusDenied, 80, 800)
	f2.denials.store = append(f2.denials.store, &denials.Denial{
		ID: uuid.New(), ClaimID: c2.ID, OrgID: orgID,
		Status: denials.StatusNew, Amount: c2.ChargeAmount,
		ReceivedAt:         sweepNow.AddDate(0, 0, -45),
		AppealDeadline:     sweepNow.AddDate(0, 0, 15),
		OverturnLikelihood: 0.6,
	})
	if _, err := f2.engine.Sweep(ctx, sweepProfile(0), orgID, 100); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if c2.Status != claims.StatusDenied {
		t.Errorf("stale denial transitioned to %s", c2.Status)
	}
}

func TestSubmitReady(t *testing.T) {
	f := newFixture(8)
	orgID := uuid.New()
	for i := 0; i < 3; i++ {
		f.addClaim(orgID, claims.StatusReadyToSubmit, 0, 500)
	}
	f.addClaim(orgID, claims.StatusDraft, 0, 500)

	n, err := f.engine.SubmitReady(context.Background(), orgID, 10)
	if err != nil {
		t.Fatalf("SubmitReady: %v", err)
	}
	if n != 3 {
		t.Fatalf("submitted %d claims, want 3", n)
	}
	for _, c := range f.claims.store {
		if c.Status == claims.StatusReadyToSubmit {
			t.Error("ready claim left behind")
		}
		if c.Status == claims.StatusDraft {
			continue
		}
		if c.Status != claims.StatusSubmitted {
			t.Errorf("unexpected status %s", c.Status)
		}
	}
}
