package port

import (
	"context"

	"github.com/google/uuid"

	"millgate/internal/domain"
)

// LocationRepository defines the contract for the four-level geographic
// hierarchy (state → district → mandal → village).
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.Location) error
	CreateBatch(ctx context.Context, locs []domain.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	ListByLevel(ctx context.Context, level domain.LocationLevel, parentID *uuid.UUID, offset, limit int) ([]domain.Location, int, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int, error)
	Update(ctx context.Context, loc *domain.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}
