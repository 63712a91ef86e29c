package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revcycle/revcycle/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const orgCols = `id, code, name, specialty, facility_type, size, region, created_at, updated_at`

func scanOrg(row pgx.Row) (*Organization, error) {
	var o Organization
	err := row.Scan(&o.ID, &o.Code, &o.Name, &o.Specialty, &o.FacilityType,
		&o.Size, &o.Region, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *repoPG) Create(ctx context.Context, o *Organization) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO organization (id, code, name, specialty, facility_type, size, region)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.Code, o.Name, o.Specialty, o.FacilityType, o.Size, o.Region)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Organization, error) {
	return scanOrg(db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+orgCols+` FROM organization WHERE id = $1`, id))
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*Organization, error) {
	return scanOrg(db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+orgCols+` FROM organization WHERE code = $1`, code))
}

func (r *repoPG) List(ctx context.Context) ([]*Organization, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `SELECT `+orgCols+` FROM organization ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*Organization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM organization`).Scan(&n)
	return n, err
}

func (r *repoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM organization`)
	return err
}

type progressRepoPG struct{ pool *pgxpool.Pool }

func NewSeedProgressRepoPG(pool *pgxpool.Pool) SeedProgressRepository {
	return &progressRepoPG{pool: pool}
}

const progressCols = `id, org_id, phase, patients_created, patient_target,
	claims_created, claim_target, started_at, updated_at`

func scanProgress(row pgx.Row) (*SeedProgress, error) {
	var p SeedProgress
	err := row.Scan(&p.ID, &p.OrgID, &p.Phase, &p.PatientsCreated, &p.PatientTarget,
		&p.ClaimsCreated, &p.ClaimTarget, &p.StartedAt, &p.UpdatedAt)
	return &p, err
}

func (r *progressRepoPG) Create(ctx context.Context, p *SeedProgress) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO seed_progress (id, org_id, phase, patients_created, patient_target,
			claims_created, claim_target)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.OrgID, p.Phase, p.PatientsCreated, p.PatientTarget,
		p.ClaimsCreated, p.ClaimTarget)
	return err
}

func (r *progressRepoPG) GetByOrg(ctx context.Context, orgID uuid.UUID) (*SeedProgress, error) {
	return scanProgress(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+progressCols+` FROM seed_progress WHERE org_id = $1`, orgID))
}

func (r *progressRepoPG) Update(ctx context.Context, p *SeedProgress) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE seed_progress
		SET phase = $2, patients_created = $3, claims_created = $4, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Phase, p.PatientsCreated, p.ClaimsCreated)
	return err
}

func (r *progressRepoPG) List(ctx context.Context) ([]*SeedProgress, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `SELECT `+progressCols+` FROM seed_progress`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*SeedProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *progressRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM seed_progress`)
	return err
}
