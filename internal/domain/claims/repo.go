package claims

import (
	"context"

	"github.com/google/uuid"
)

type ClaimRepository interface {
	Create(ctx context.Context, c *Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*Claim, error)
	// UpdateStatus patches the claim's status, and the settled totals when
	// totals is non-nil, in a single write.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, totals *SettledTotals) error
	// ListByStatus returns up to limit claims for the organization in any of
	// the given statuses, oldest submission first.
	ListByStatus(ctx context.Context, orgID uuid.UUID, statuses []string, limit int) ([]*Claim, error)
	CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) error
}

type LineItemRepository interface {
	CreateBatch(ctx context.Context, items []*LineItem) error
	ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*LineItem, error)
	DeleteAll(ctx context.Context) error
}

type DiagnosisRepository interface {
	CreateBatch(ctx context.Context, diags []*Diagnosis) error
	ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*Diagnosis, error)
	DeleteAll(ctx context.Context) error
}
