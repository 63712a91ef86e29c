package patients

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revcycle/revcycle/internal/platform/db"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

const patientCols = `id, org_id, seq, mrn, first_name, last_name, gender, birth_date,
	address, city, state, postal_code, phone, email, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.OrgID, &p.Seq, &p.MRN, &p.FirstName, &p.LastName,
		&p.Gender, &p.BirthDate, &p.Address, &p.City, &p.State, &p.PostalCode,
		&p.Phone, &p.Email, &p.CreatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO patient (id, org_id, seq, mrn, first_name, last_name, gender,
			birth_date, address, city, state, postal_code, phone, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.OrgID, p.Seq, p.MRN, p.FirstName, p.LastName, p.Gender,
		p.BirthDate, p.Address, p.City, p.State, p.PostalCode, p.Phone, p.Email)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) GetBySeq(ctx context.Context, orgID uuid.UUID, seq int) (*Patient, error) {
	return scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE org_id = $1 AND seq = $2`, orgID, seq))
}

func (r *patientRepoPG) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE org_id = $1`, orgID).Scan(&n)
	return n, err
}

func (r *patientRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM patient`)
	return err
}

type coverageRepoPG struct{ pool *pgxpool.Pool }

func NewCoverageRepoPG(pool *pgxpool.Pool) CoverageRepository { return &coverageRepoPG{pool: pool} }

const coverageCols = `id, patient_id, org_id, payer_id, payer_name, payer_type,
	priority, member_id, group_number, effective_date, term_date, created_at`

func scanCoverage(row pgx.Row) (*Coverage, error) {
	var c Coverage
	err := row.Scan(&c.ID, &c.PatientID, &c.OrgID, &c.PayerID, &c.PayerName,
		&c.PayerType, &c.Priority, &c.MemberID, &c.GroupNumber,
		&c.EffectiveDate, &c.TermDate, &c.CreatedAt)
	return &c, err
}

func (r *coverageRepoPG) Create(ctx context.Context, c *Coverage) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO coverage (id, patient_id, org_id, payer_id, payer_name, payer_type,
			priority, member_id, group_number, effective_date, term_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.PatientID, c.OrgID, c.PayerID, c.PayerName, c.PayerType,
		c.Priority, c.MemberID, c.GroupNumber, c.EffectiveDate, c.TermDate)
	return err
}

func (r *coverageRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Coverage, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+coverageCols+` FROM coverage WHERE patient_id = $1 ORDER BY priority`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Coverage
	for rows.Next() {
		c, err := scanCoverage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *coverageRepoPG) PrimaryForPatient(ctx context.Context, patientID uuid.UUID) (*Coverage, error) {
	return scanCoverage(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+coverageCols+` FROM coverage WHERE patient_id = $1 AND priority = 'primary'`, patientID))
}

func (r *coverageRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM coverage`)
	return err
}
