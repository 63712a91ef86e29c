package organization

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	GetByCode(ctx context.Context, code string) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type SeedProgressRepository interface {
	Create(ctx context.Context, p *SeedProgress) error
	GetByOrg(ctx context.Context, orgID uuid.UUID) (*SeedProgress, error)
	Update(ctx context.Context, p *SeedProgress) error
	List(ctx context.Context) ([]*SeedProgress, error)
	DeleteAll(ctx context.Context) error
}
