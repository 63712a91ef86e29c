package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revcycle/revcycle/internal/platform/db"
)

type paymentRepoPG struct{ pool *pgxpool.Pool }

func NewPaymentRepoPG(pool *pgxpool.Pool) PaymentRepository { return &paymentRepoPG{pool: pool} }

const paymentCols = `id, claim_id, org_id, type, method, amount, reference, paid_at, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.ClaimID, &p.OrgID, &p.Type, &p.Method,
		&p.Amount, &p.Reference, &p.PaidAt, &p.CreatedAt)
	return &p, err
}

func (r *paymentRepoPG) Create(ctx context.Context, p *Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO payment (id, claim_id, org_id, type, method, amount, reference, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.ClaimID, p.OrgID, p.Type, p.Method, p.Amount.StringFixed(2),
		p.Reference, p.PaidAt)
	return err
}

func (r *paymentRepoPG) ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*Payment, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+paymentCols+` FROM payment WHERE claim_id = $1 ORDER BY paid_at`, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM payment`)
	return err
}

type adjustmentRepoPG struct{ pool *pgxpool.Pool }

func NewAdjustmentRepoPG(pool *pgxpool.Pool) AdjustmentRepository {
	return &adjustmentRepoPG{pool: pool}
}

func (r *adjustmentRepoPG) CreateBatch(ctx context.Context, adjs []*Adjustment) error {
	for _, a := range adjs {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		_, err := db.Conn(ctx, r.pool).Exec(ctx, `
			INSERT INTO adjustment (id, claim_id, line_item_id, group_code, reason_code,
				description, amount)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			a.ID, a.ClaimID, a.LineItemID, a.GroupCode, a.ReasonCode,
			a.Description, a.Amount.StringFixed(2))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *adjustmentRepoPG) ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*Adjustment, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
		SELECT id, claim_id, line_item_id, group_code, reason_code, description, amount, created_at
		FROM adjustment WHERE claim_id = $1 ORDER BY created_at`, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Adjustment
	for rows.Next() {
		var a Adjustment
		if err := rows.Scan(&a.ID, &a.ClaimID, &a.LineItemID, &a.GroupCode,
			&a.ReasonCode, &a.Description, &a.Amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *adjustmentRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM adjustment`)
	return err
}
