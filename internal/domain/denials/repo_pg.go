package denials

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/platform/db"
)

type denialRepoPG struct{ pool *pgxpool.Pool }

func NewDenialRepoPG(pool *pgxpool.Pool) DenialRepository { return &denialRepoPG{pool: pool} }

const denialCols = `id, claim_id, org_id, line_item_id, category, code, description,
	status, amount, received_at, appeal_deadline, suggested_action,
	overturn_likelihood, similar_denial_count, created_at, updated_at`

func scanDenial(row pgx.Row) (*Denial, error) {
	var d Denial
	err := row.Scan(&d.ID, &d.ClaimID, &d.OrgID, &d.LineItemID, &d.Category,
		&d.Code, &d.Description, &d.Status, &d.Amount, &d.ReceivedAt,
		&d.AppealDeadline, &d.SuggestedAction, &d.OverturnLikelihood,
		&d.SimilarDenialCount, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *denialRepoPG) Create(ctx context.Context, d *Denial) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO denial (id, claim_id, org_id, line_item_id, category, code,
			description, status, amount, received_at, appeal_deadline,
			suggested_action, overturn_likelihood, similar_denial_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		d.ID, d.ClaimID, d.OrgID, d.LineItemID, d.Category, d.Code,
		d.Description, d.Status, d.Amount.StringFixed(2), d.ReceivedAt,
		d.AppealDeadline, d.SuggestedAction, d.OverturnLikelihood, d.SimilarDenialCount)
	return err
}

func (r *denialRepoPG) GetByClaim(ctx context.Context, claimID uuid.UUID) (*Denial, error) {
	return scanDenial(db.Conn(ctx, r.pool).QueryRow(ctx, `
		SELECT `+denialCols+` FROM denial
		WHERE claim_id = $1 ORDER BY created_at DESC LIMIT 1`, claimID))
}

func (r *denialRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE denial SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *denialRepoPG) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM denial WHERE org_id = $1`, orgID).Scan(&n)
	return n, err
}

func (r *denialRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM denial`)
	return err
}

type appealRepoPG struct{ pool *pgxpool.Pool }

func NewAppealRepoPG(pool *pgxpool.Pool) AppealRepository { return &appealRepoPG{pool: pool} }

const appealCols = `id, denial_id, claim_id, level, type, status, outcome,
	response_notes, recovered_amount, submitted_at, decided_at, created_at`

func scanAppeal(row pgx.Row) (*Appeal, error) {
	var a Appeal
	var recovered decimal.NullDecimal
	err := row.Scan(&a.ID, &a.DenialID, &a.ClaimID, &a.Level, &a.Type, &a.Status,
		&a.Outcome, &a.ResponseNotes, &recovered, &a.SubmittedAt, &a.DecidedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if recovered.Valid {
		a.RecoveredAmount = &recovered.Decimal
	}
	return &a, nil
}

func (r *appealRepoPG) Create(ctx context.Context, a *Appeal) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	var recovered *string
	if a.RecoveredAmount != nil {
		s := a.RecoveredAmount.StringFixed(2)
		recovered = &s
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO appeal (id, denial_id, claim_id, level, type, status, outcome,
			response_notes, recovered_amount, submitted_at, decided_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.DenialID, a.ClaimID, a.Level, a.Type, a.Status, a.Outcome,
		a.ResponseNotes, recovered, a.SubmittedAt, a.DecidedAt)
	return err
}

func (r *appealRepoPG) ListByDenial(ctx context.Context, denialID uuid.UUID) ([]*Appeal, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+appealCols+` FROM appeal WHERE denial_id = $1 ORDER BY level`, denialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Appeal
	for rows.Next() {
		a, err := scanAppeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *appealRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM appeal`)
	return err
}
