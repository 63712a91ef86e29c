package patients

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetBySeq(ctx context.Context, orgID uuid.UUID, seq int) (*Patient, error)
	CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) error
}

type CoverageRepository interface {
	Create(ctx context.Context, c *Coverage) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Coverage, error)
	PrimaryForPatient(ctx context.Context, patientID uuid.UUID) (*Coverage, error)
	DeleteAll(ctx context.Context) error
}
