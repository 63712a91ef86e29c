package worklist

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revcycle/revcycle/internal/platform/db"
)

type taskRepoPG struct{ pool *pgxpool.Pool }

func NewTaskRepoPG(pool *pgxpool.Pool) TaskRepository { return &taskRepoPG{pool: pool} }

const taskCols = `id, org_id, claim_id, denial_id, patient_id, category, priority,
	status, title, description, due_date, confidence, reasoning, score,
	created_at, updated_at`

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.OrgID, &t.ClaimID, &t.DenialID, &t.PatientID,
		&t.Category, &t.Priority, &t.Status, &t.Title, &t.Description,
		&t.DueDate, &t.Confidence, &t.Reasoning, &t.Score, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *taskRepoPG) CreateBatch(ctx context.Context, tasks []*Task) error {
	for _, t := range tasks {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		_, err := db.Conn(ctx, r.pool).Exec(ctx, `
			INSERT INTO task (id, org_id, claim_id, denial_id, patient_id, category,
				priority, status, title, description, due_date, confidence, reasoning, score)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			t.ID, t.OrgID, t.ClaimID, t.DenialID, t.PatientID, t.Category,
			t.Priority, t.Status, t.Title, t.Description, t.DueDate,
			t.Confidence, t.Reasoning, t.Score)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *taskRepoPG) ListByOrg(ctx context.Context, orgID uuid.UUID, status string, limit int) ([]*Task, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
		SELECT `+taskCols+` FROM task
		WHERE org_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY due_date NULLS LAST, created_at
		LIMIT $3`, orgID, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *taskRepoPG) DeleteAll(ctx context.Context) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM task`)
	return err
}
