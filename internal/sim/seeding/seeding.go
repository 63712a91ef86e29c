// Package seeding orchestrates the batch population of the synthetic
// dataset: organizations first, then patients, then historical claims with
// their downstream denials, payments, and worklist tasks. Work proceeds in
// bounded batches chained through deferred continuations, with progress
// persisted after every batch so a restart resumes where it left off.
package seeding

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/denials"
	"github.com/revcycle/revcycle/internal/domain/organization"
	"github.com/revcycle/revcycle/internal/domain/patients"
	"github.com/revcycle/revcycle/internal/domain/payments"
	"github.com/revcycle/revcycle/internal/domain/worklist"
	"github.com/revcycle/revcycle/internal/platform/scheduling"
	"github.com/revcycle/revcycle/internal/sim/generate"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// ErrAlreadySeeded is returned when SeedAll finds existing organizations.
var ErrAlreadySeeded = errors.New("already seeded")

// ErrConfirmationRequired guards the destructive reset path.
var ErrConfirmationRequired = errors.New("reset requires confirmation")

// Repos bundles every repository the seeder writes through.
type Repos struct {
	Orgs        organization.Repository
	Progress    organization.SeedProgressRepository
	Patients    patients.PatientRepository
	Coverages   patients.CoverageRepository
	Claims      claims.ClaimRepository
	LineItems   claims.LineItemRepository
	Diagnoses   claims.DiagnosisRepository
	Denials     denials.DenialRepository
	Appeals     denials.AppealRepository
	Payments    payments.PaymentRepository
	Adjustments payments.AdjustmentRepository
	Tasks       worklist.TaskRepository
}

// draws pairs a randomness source with the generator built on it. The
// math/rand source is not goroutine safe, so draws are never shared across
// concurrently running chains.
type draws struct {
	src sampling.Source
	gen *generate.Generator
}

func newDraws(seed int64) *draws {
	src := sampling.NewSource(seed)
	return &draws{src: src, gen: generate.New(src)}
}

// Seeder drives the seeding pipeline. One seeder per process. Each
// organization's chain owns a randomness source derived from the base seed
// and the org code, so concurrent chains share no generator state; the
// daily-generation path draws from its own.
type Seeder struct {
	repos     Repos
	seed      int64
	deferrer  scheduling.Deferrer
	batchSize int
	delay     time.Duration
	log       zerolog.Logger
	now       func() time.Time

	mu     sync.Mutex
	chains map[string]*draws
	daily  *draws
}

// New returns a Seeder writing batchSize entities per continuation, spaced
// by delay. A seed of 0 selects a time-based seed.
func New(repos Repos, seed int64, deferrer scheduling.Deferrer, batchSize int, delay time.Duration, log zerolog.Logger) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		repos:     repos,
		seed:      seed,
		deferrer:  deferrer,
		batchSize: batchSize,
		delay:     delay,
		log:       log,
		now:       time.Now,
		chains:    make(map[string]*draws),
		daily:     newDraws(seed),
	}
}

// chainDraws returns the organization's dedicated randomness, created on
// first use. Keying by org code keeps a chain's draw sequence stable across
// process restarts with the same seed.
func (s *Seeder) chainDraws(code string) *draws {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.chains[code]
	if !ok {
		h := fnv.New64a()
		h.Write([]byte(code))
		d = newDraws(s.seed ^ int64(h.Sum64()))
		s.chains[code] = d
	}
	return d
}

// WithClock overrides the seeder's clock.
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// SeedAll creates one organization per configured profile with a fresh
// progress record, then kicks off each organization's batch chain. It
// refuses to run against a database that already holds organizations.
func (s *Seeder) SeedAll(ctx context.Context) ([]*organization.Organization, error) {
	count, err := s.repos.Orgs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count organizations: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadySeeded
	}

	asOf := s.now()
	orgs := make([]*organization.Organization, 0, len(refdata.Organizations))
	for i := range refdata.Organizations {
		profile := &refdata.Organizations[i]
		org := &organization.Organization{
			ID:           uuid.New(),
			Code:         profile.Code,
			Name:         profile.Name,
			Specialty:    profile.Specialty,
			FacilityType: profile.FacilityType,
			Size:         profile.Size,
			Region:       profile.Region,
			CreatedAt:    asOf,
			UpdatedAt:    asOf,
		}
		if err := s.repos.Orgs.Create(ctx, org); err != nil {
			return nil, fmt.Errorf("create organization %s: %w", profile.Code, err)
		}
		progress := &organization.SeedProgress{
			ID:            uuid.New(),
			OrgID:         org.ID,
			Phase:         organization.PhasePatients,
			PatientTarget: profile.PatientCount,
			ClaimTarget:   profile.HistoricalClaimTarget,
			StartedAt:     asOf,
			UpdatedAt:     asOf,
		}
		if err := s.repos.Progress.Create(ctx, progress); err != nil {
			return nil, fmt.Errorf("create seed progress for %s: %w", profile.Code, err)
		}
		orgs = append(orgs, org)
		s.schedule(org.ID, org.Code)
	}

	s.log.Info().Int("organizations", len(orgs)).Msg("seeding started")
	return orgs, nil
}

// schedule queues the next continuation for an organization's chain.
func (s *Seeder) schedule(orgID uuid.UUID, code string) {
	s.deferrer.Defer("seed:"+code, s.delay, func(ctx context.Context) {
		if err := s.Continue(ctx, orgID); err != nil {
			s.log.Error().Err(err).Str("org", code).Msg("seed batch failed")
		}
	})
}

// Continue runs one batch for the organization and schedules the next one
// if work remains. All state comes from the persisted progress record, so a
// continuation lost to a crash or redeploy costs nothing but time.
func (s *Seeder) Continue(ctx context.Context, orgID uuid.UUID) error {
	progress, err := s.repos.Progress.GetByOrg(ctx, orgID)
	if err != nil {
		return fmt.Errorf("load seed progress: %w", err)
	}
	if progress == nil {
		return fmt.Errorf("no seed progress for organization %s", orgID)
	}
	org, err := s.repos.Orgs.GetByID(ctx, orgID)
	if err != nil || org == nil {
		return fmt.Errorf("load organization %s: %w", orgID, err)
	}
	profile, ok := refdata.ProfileByCode(org.Code)
	if !ok {
		return fmt.Errorf("no profile for organization %s", org.Code)
	}

	if progress.Phase == organization.PhaseComplete {
		return nil
	}

	d := s.chainDraws(org.Code)
	budget := s.batchSize
	if progress.Phase == organization.PhasePatients {
		n, err := s.seedPatients(ctx, d, &profile, orgID, progress, budget)
		if err != nil {
			return err
		}
		budget -= n
		if progress.PatientsCreated >= progress.PatientTarget {
			progress.Phase = organization.PhaseClaims
		}
	}
	if progress.Phase == organization.PhaseClaims && budget > 0 {
		if err := s.seedClaims(ctx, d, &profile, orgID, progress, budget); err != nil {
			return err
		}
	}

	if progress.Complete() {
		progress.Phase = organization.PhaseComplete
	}
	progress.UpdatedAt = s.now()
	if err := s.repos.Progress.Update(ctx, progress); err != nil {
		return fmt.Errorf("update seed progress: %w", err)
	}

	s.log.Info().
		Str("org", org.Code).
		Str("phase", progress.Phase).
		Int("patients", progress.PatientsCreated).
		Int("claims", progress.ClaimsCreated).
		Msg("seed batch complete")

	if progress.Phase != organization.PhaseComplete {
		s.schedule(orgID, org.Code)
	}
	return nil
}

// seedPatients creates up to budget patients and returns how many it made.
func (s *Seeder) seedPatients(ctx context.Context, d *draws, profile *refdata.OrganizationProfile, orgID uuid.UUID, progress *organization.SeedProgress, budget int) (int, error) {
	remaining := progress.PatientTarget - progress.PatientsCreated
	if remaining > budget {
		remaining = budget
	}
	asOf := s.now()
	for i := 0; i < remaining; i++ {
		seq := progress.PatientsCreated + 1
		bundle, err := d.gen.Patient(profile, orgID, seq, asOf)
		if err != nil {
			return i, fmt.Errorf("generate patient %d: %w", seq, err)
		}
		if err := s.repos.Patients.Create(ctx, bundle.Patient); err != nil {
			return i, fmt.Errorf("create patient %d: %w", seq, err)
		}
		for _, c := range bundle.Coverages {
			if err := s.repos.Coverages.Create(ctx, c); err != nil {
				return i, fmt.Errorf("create coverage for patient %d: %w", seq, err)
			}
		}
		progress.PatientsCreated++
	}
	return remaining, nil
}

// seedClaims creates up to budget historical claims, each linked to a random
// already-seeded patient. Patients that cannot be loaded are skipped without
// burning the claim counter.
func (s *Seeder) seedClaims(ctx context.Context, d *draws, profile *refdata.OrganizationProfile, orgID uuid.UUID, progress *organization.SeedProgress, budget int) error {
	remaining := progress.ClaimTarget - progress.ClaimsCreated
	if remaining > budget {
		remaining = budget
	}
	if progress.PatientsCreated == 0 {
		return fmt.Errorf("organization %s has no patients to attach claims to", profile.Code)
	}

	asOf := s.now()
	for i := 0; i < remaining; i++ {
		seq := sampling.IntN(d.src, progress.PatientsCreated) + 1
		patient, err := s.repos.Patients.GetBySeq(ctx, orgID, seq)
		if err != nil {
			return fmt.Errorf("load patient %d: %w", seq, err)
		}
		if patient == nil {
			s.log.Warn().Str("org", profile.Code).Int("seq", seq).Msg("patient missing, skipping claim")
			continue
		}
		coverage, err := s.repos.Coverages.PrimaryForPatient(ctx, patient.ID)
		if err != nil {
			return fmt.Errorf("load coverage for patient %d: %w", seq, err)
		}
		if coverage == nil {
			s.log.Warn().Str("org", profile.Code).Int("seq", seq).Msg("primary coverage missing, skipping claim")
			continue
		}

		if err := s.seedClaim(ctx, d, profile, orgID, patient, coverage, progress.ClaimsCreated+1, asOf); err != nil {
			return err
		}
		progress.ClaimsCreated++
	}
	return nil
}

// seedClaim persists one claim bundle and everything downstream of it.
func (s *Seeder) seedClaim(ctx context.Context, d *draws, profile *refdata.OrganizationProfile, orgID uuid.UUID, patient *patients.Patient, coverage *patients.Coverage, seq int, asOf time.Time) error {
	cb, err := d.gen.Claim(profile, orgID, patient, coverage, seq, asOf)
	if err != nil {
		return fmt.Errorf("generate claim %d: %w", seq, err)
	}
	if err := s.repos.Claims.Create(ctx, cb.Claim); err != nil {
		return fmt.Errorf("create claim %s: %w", cb.Claim.ClaimNumber, err)
	}
	if err := s.repos.LineItems.CreateBatch(ctx, cb.LineItems); err != nil {
		return fmt.Errorf("create line items for %s: %w", cb.Claim.ClaimNumber, err)
	}
	if err := s.repos.Diagnoses.CreateBatch(ctx, cb.Diagnoses); err != nil {
		return fmt.Errorf("create diagnoses for %s: %w", cb.Claim.ClaimNumber, err)
	}

	db, hasDenial, err := d.gen.Denial(profile, cb.Claim, asOf)
	if err != nil {
		return fmt.Errorf("generate denial for %s: %w", cb.Claim.ClaimNumber, err)
	}
	if hasDenial {
		if err := s.repos.Denials.Create(ctx, db.Denial); err != nil {
			return fmt.Errorf("create denial for %s: %w", cb.Claim.ClaimNumber, err)
		}
		if db.Appeal != nil {
			if err := s.repos.Appeals.Create(ctx, db.Appeal); err != nil {
				return fmt.Errorf("create appeal for %s: %w", cb.Claim.ClaimNumber, err)
			}
		}
	}

	remit, err := d.gen.Payments(cb.Claim, cb.LineItems, asOf)
	if err != nil {
		return fmt.Errorf("generate payments for %s: %w", cb.Claim.ClaimNumber, err)
	}
	for _, p := range remit.Payments {
		if err := s.repos.Payments.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment for %s: %w", cb.Claim.ClaimNumber, err)
		}
	}
	if len(remit.Adjustments) > 0 {
		if err := s.repos.Adjustments.CreateBatch(ctx, remit.Adjustments); err != nil {
			return fmt.Errorf("create adjustments for %s: %w", cb.Claim.ClaimNumber, err)
		}
	}

	if tasks := d.gen.Tasks(cb.Claim, db, remit, asOf); len(tasks) > 0 {
		if err := s.repos.Tasks.CreateBatch(ctx, tasks); err != nil {
			return fmt.Errorf("create tasks for %s: %w", cb.Claim.ClaimNumber, err)
		}
	}
	return nil
}

// Progress returns every organization's persisted seeding state.
func (s *Seeder) Progress(ctx context.Context) ([]*organization.SeedProgress, error) {
	return s.repos.Progress.List(ctx)
}

// GenerateDaily authors a day's worth of fresh claims for every seeded
// organization: a Poisson draw around the profile's weekday or weekend rate.
// Fresh claims are draft or ready_to_submit; the lifecycle sweep takes them
// from there.
func (s *Seeder) GenerateDaily(ctx context.Context) (int, error) {
	orgs, err := s.repos.Orgs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list organizations: %w", err)
	}

	asOf := s.now()
	weekend := asOf.Weekday() == time.Saturday || asOf.Weekday() == time.Sunday
	total := 0
	for _, org := range orgs {
		profile, ok := refdata.ProfileByCode(org.Code)
		if !ok {
			continue
		}
		progress, err := s.repos.Progress.GetByOrg(ctx, org.ID)
		if err != nil {
			return total, fmt.Errorf("load seed progress for %s: %w", org.Code, err)
		}
		if progress == nil || progress.PatientsCreated == 0 {
			continue
		}

		rate := profile.WeekdayClaimRate
		if weekend {
			rate = profile.WeekendClaimRate
		}
		n := sampling.Poisson(s.daily.src, rate)
		for i := 0; i < n; i++ {
			seq := sampling.IntN(s.daily.src, progress.PatientsCreated) + 1
			patient, err := s.repos.Patients.GetBySeq(ctx, org.ID, seq)
			if err != nil {
				return total, fmt.Errorf("load patient %d: %w", seq, err)
			}
			if patient == nil {
				continue
			}
			coverage, err := s.repos.Coverages.PrimaryForPatient(ctx, patient.ID)
			if err != nil || coverage == nil {
				continue
			}
			cb, err := s.daily.gen.NewClaim(&profile, org.ID, patient, coverage, progress.ClaimsCreated+1, asOf)
			if err != nil {
				return total, fmt.Errorf("generate daily claim: %w", err)
			}
			if err := s.repos.Claims.Create(ctx, cb.Claim); err != nil {
				return total, fmt.Errorf("create daily claim: %w", err)
			}
			if err := s.repos.LineItems.CreateBatch(ctx, cb.LineItems); err != nil {
				return total, fmt.Errorf("create daily line items: %w", err)
			}
			if err := s.repos.Diagnoses.CreateBatch(ctx, cb.Diagnoses); err != nil {
				return total, fmt.Errorf("create daily diagnoses: %w", err)
			}
			progress.ClaimsCreated++
			total++
		}
		progress.UpdatedAt = asOf
		if err := s.repos.Progress.Update(ctx, progress); err != nil {
			return total, fmt.Errorf("update seed progress for %s: %w", org.Code, err)
		}
	}

	s.log.Info().Int("claims", total).Bool("weekend", weekend).Msg("daily claims generated")
	return total, nil
}

// ResetAndReseed wipes every generated table in dependency order and starts
// a fresh seed. confirm must be true; this destroys the whole dataset.
func (s *Seeder) ResetAndReseed(ctx context.Context, confirm bool) ([]*organization.Organization, error) {
	if !confirm {
		return nil, ErrConfirmationRequired
	}

	// Children before parents.
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"tasks", s.repos.Tasks.DeleteAll},
		{"adjustments", s.repos.Adjustments.DeleteAll},
		{"payments", s.repos.Payments.DeleteAll},
		{"appeals", s.repos.Appeals.DeleteAll},
		{"denials", s.repos.Denials.DeleteAll},
		{"diagnoses", s.repos.Diagnoses.DeleteAll},
		{"line items", s.repos.LineItems.DeleteAll},
		{"claims", s.repos.Claims.DeleteAll},
		{"coverages", s.repos.Coverages.DeleteAll},
		{"patients", s.repos.Patients.DeleteAll},
		{"seed progress", s.repos.Progress.DeleteAll},
		{"organizations", s.repos.Orgs.DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return nil, fmt.Errorf("delete %s: %w", step.name, err)
		}
	}
	s.log.Warn().Msg("dataset wiped, reseeding")
	return s.SeedAll(ctx)
}
