package port

import (
	"context"

	"github.com/google/uuid"

	"millgate/internal/domain"
)

// SeasonRateRepository defines the contract for season bag-rate persistence.
// Rows are keyed uniquely by (organization, crop-year start year, season,
// rice-type code).
type SeasonRateRepository interface {
	ListForSeason(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRateRow, error)
	Upsert(ctx context.Context, rows []domain.SeasonBagRateRow) error
	// ZeroAll sets every stored rate for the (year, season) to zero,
	// including rates for rice types no longer active. Returns the number
	// of rows touched.
	ZeroAll(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode, updatedBy uuid.UUID) (int, error)
}
