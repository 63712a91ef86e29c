package claims

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revcycle/revcycle/internal/platform/db"
)

type claimRepoPG struct{ pool *pgxpool.Pool }

func NewClaimRepoPG(pool *pgxpool.Pool) ClaimRepository { return &claimRepoPG{pool: pool} }

const claimCols = `id, org_id, patient_id, coverage_id, claim_number, payer_type,
	status, priority, service_date, submitted_at, charge_amount,
	allowed_amount, paid_amount, adjustment_amount, patient_responsibility,
	denial_risk, risk_factors, created_at, updated_at`

func scanClaim(row pgx.Row) (*Claim, error) {
	var c Claim
	var t SettledTotals
	var allowed, paid, adj, pr *string
	err := row.Scan(&c.ID, &c.OrgID, &c.PatientID, &c.CoverageID, &c.ClaimNumber,
		&c.PayerType, &c.Status, &c.Priority, &c.ServiceDate, &c.SubmittedAt,
		&c.ChargeAmount, &allowed, &paid, &adj, &pr,
		&c.DenialRisk, &c.RiskFactors, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if allowed != nil && paid != nil && adj != nil && pr != nil {
		if t.AllowedAmount, err = parseDec(*allowed); err != nil {
			return nil, err
		}
		if t.PaidAmount, err = parseDec(*paid); err != nil {
			return nil, err
		}
		if t.AdjustmentAmount, err = parseDec(*adj); err != nil {
			return nil, err
		}
		if t.PatientResponsibility, err = parseDec(*pr); err != nil {
			return nil, err
		}
		c.Totals = &t
	}
	return &c, nil
}

func (r *claimRepoPG) Create(ctx context.Context, c *Claim) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	var allowed, paid, adj, pr *string
	if c.Totals != nil {
		allowed = strPtr(c.Totals.AllowedAmount.StringFixed(2))
		paid = strPtr(c.Totals.PaidAmount.StringFixed(2))
		adj = strPtr(c.Totals.AdjustmentAmount.StringFixed(2))
		pr = strPtr(c.Totals.PatientResponsibility.StringFixed(2))
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO claim (id, org_id, patient_id, coverage_id, claim_number, payer_type,
			status, priority, service_date, submitted_at, charge_amount,
			allowed_amount, paid_amount, adjustment_amount, patient_responsibility,
			denial_risk, risk_factors)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		c.ID, c.OrgID, c.PatientID, c.CoverageID, c.ClaimNumber, c.PayerType,
		c.Status, c.Priority, c.ServiceDate, c.SubmittedAt, c.ChargeAmount.StringFixed(2),
		allowed, paid, adj, pr, c.DenialRisk, c.RiskFactors)
	return err
}

func (r *claimRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Claim, error) {
	return scanClaim(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+claimCols+` FROM claim WHERE id = $1`, id))
}

func (r *claimRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string, totals *SettledTotals) error {
	if totals == nil {
		_, err := db.Conn(ctx, r.pool).Exec(ctx,
			`UPDATE claim SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
		return err
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE claim SET status = $2, allowed_amount = $3, paid_amount = $4,
			adjustment_amount = $5, patient_responsibility = $6, updated_at = NOW()
		WHERE id = $1`,
		id, status, totals.AllowedAmount.StringFixed(2), totals.PaidAmount.StringFixed(2),
		totals.AdjustmentAmount.StringFixed(2), totals.PatientResponsibility.StringFixed(2))
	return err
}

func (r *claimRepoPG) ListByStatus(ctx context.Context, orgID uuid.UUID, statuses []string, limit int) ([]*Claim, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
		SELECT `+claimCols+` FROM claim
		WHERE org_id = $1 AND status = ANY($2)
		ORDER BY submitted_at NULLS LAST, created_at
		LIMIT $3`, orgID, statuses, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *claimRepoPG) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM claim WHERE org_id = $1`, orgID).Scan(&n)
	return n, err
}

func (r *claimRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM claim`)
	return err
}

type lineItemRepoPG struct{ pool *pgxpool.Pool }

func NewLineItemRepoPG(pool *pgxpool.Pool) LineItemRepository { return &lineItemRepoPG{pool: pool} }

const lineItemCols = `id, claim_id, line_number, procedure_code, description,
	modifiers, units, charge_amount, allowed_amount, paid_amount, status`

func scanLineItem(row pgx.Row) (*LineItem, error) {
	var li LineItem
	var allowed, paid *string
	err := row.Scan(&li.ID, &li.ClaimID, &li.LineNumber, &li.ProcedureCode,
		&li.Description, &li.Modifiers, &li.Units, &li.ChargeAmount,
		&allowed, &paid, &li.Status)
	if err != nil {
		return nil, err
	}
	if allowed != nil {
		d, err := parseDec(*allowed)
		if err != nil {
			return nil, err
		}
		li.AllowedAmount = &d
	}
	if paid != nil {
		d, err := parseDec(*paid)
		if err != nil {
			return nil, err
		}
		li.PaidAmount = &d
	}
	return &li, nil
}

func (r *lineItemRepoPG) CreateBatch(ctx context.Context, items []*LineItem) error {
	for _, li := range items {
		if li.ID == uuid.Nil {
			li.ID = uuid.New()
		}
		var allowed, paid *string
		if li.AllowedAmount != nil {
			allowed = strPtr(li.AllowedAmount.StringFixed(2))
		}
		if li.PaidAmount != nil {
			paid = strPtr(li.PaidAmount.StringFixed(2))
		}
		_, err := db.Conn(ctx, r.pool).Exec(ctx, `
			INSERT INTO claim_line_item (id, claim_id, line_number, procedure_code,
				description, modifiers, units, charge_amount, allowed_amount, paid_amount, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			li.ID, li.ClaimID, li.LineNumber, li.ProcedureCode, li.Description,
			li.Modifiers, li.Units, li.ChargeAmount.StringFixed(2), allowed, paid, li.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *lineItemRepoPG) ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*LineItem, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+lineItemCols+` FROM claim_line_item WHERE claim_id = $1 ORDER BY line_number`, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, li)
	}
	return out, rows.Err()
}

func (r *lineItemRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM claim_line_item`)
	return err
}

type diagnosisRepoPG struct{ pool *pgxpool.Pool }

func NewDiagnosisRepoPG(pool *pgxpool.Pool) DiagnosisRepository { return &diagnosisRepoPG{pool: pool} }

func (r *diagnosisRepoPG) CreateBatch(ctx context.Context, diags []*Diagnosis) error {
	for _, d := range diags {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		_, err := db.Conn(ctx, r.pool).Exec(ctx, `
			INSERT INTO claim_diagnosis (id, claim_id, sequence, code, description, is_primary)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			d.ID, d.ClaimID, d.Sequence, d.Code, d.Description, d.IsPrimary)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *diagnosisRepoPG) ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*Diagnosis, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
		SELECT id, claim_id, sequence, code, description, is_primary
		FROM claim_diagnosis WHERE claim_id = $1 ORDER BY sequence`, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.ID, &d.ClaimID, &d.Sequence, &d.Code, &d.Description, &d.IsPrimary); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *diagnosisRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM claim_diagnosis`)
	return err
}
