package payments

import (
	"context"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*Payment, error)
	DeleteAll(ctx context.Context) error
}

type AdjustmentRepository interface {
	CreateBatch(ctx context.Context, adjs []*Adjustment) error
	ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*Adjustment, error)
	DeleteAll(ctx context.Context) error
}
