package worklist

import (
	"context"

	"github.com/google/uuid"
)

type TaskRepository interface {
	CreateBatch(ctx context.Context, tasks []*Task) error
	ListByOrg(ctx context.Context, orgID uuid.UUID, status string, limit int) ([]*Task, error)
	DeleteAll(ctx context.Context) error
}
