package port

import (
	"context"

	"github.com/google/uuid"

	"millgate/internal/domain"
)

// CropYearRepository defines the contract for crop-year data access.
// Crop years are append-only: there is no update operation.
type CropYearRepository interface {
	Create(ctx context.Context, year *domain.CropYear) error
	GetByStartYear(ctx context.Context, startYear int) (*domain.CropYear, error)
	List(ctx context.Context, offset, limit int) ([]domain.CropYear, int, error)
}

// RiceTypeRepository defines the contract for rice-type master data.
type RiceTypeRepository interface {
	Create(ctx context.Context, rt *domain.RiceType) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RiceType, error)
	List(ctx context.Context, includeInactive bool) ([]domain.RiceType, error)
	Update(ctx context.Context, rt *domain.RiceType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RiceVarietyRepository defines the contract for rice-variety master data.
type RiceVarietyRepository interface {
	Create(ctx context.Context, v *domain.RiceVariety) error
	ListByRiceType(ctx context.Context, riceTypeID uuid.UUID) ([]domain.RiceVariety, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ByProductRepository defines the contract for by-product master data.
type ByProductRepository interface {
	Create(ctx context.Context, bp *domain.ByProduct) error
	List(ctx context.Context, includeInactive bool) ([]domain.ByProduct, error)
	Update(ctx context.Context, bp *domain.ByProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
}
