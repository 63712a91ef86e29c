package denials

import (
	"context"

	"github.com/google/uuid"
)

type DenialRepository interface {
	Create(ctx context.Context, d *Denial) error
	GetByClaim(ctx context.Context, claimID uuid.UUID) (*Denial, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) error
}

type AppealRepository interface {
	Create(ctx context.Context, a *Appeal) error
	ListByDenial(ctx context.Context, denialID uuid.UUID) ([]*Appeal, error)
	DeleteAll(ctx context.Context) error
}
