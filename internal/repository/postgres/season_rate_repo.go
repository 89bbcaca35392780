package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"millgate/internal/domain"
	"millgate/internal/port"
)

type seasonRateRepo struct {
	db *sqlx.DB
}

// NewSeasonRateRepo creates a new PostgreSQL-backed SeasonRateRepository.
func NewSeasonRateRepo(db *sqlx.DB) port.SeasonRateRepository {
	return &seasonRateRepo{db: db}
}

func (r *seasonRateRepo) ListForSeason(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRateRow, error) {
	var rows []domain.SeasonBagRateRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM season_bag_rates
		 WHERE organization_id = $1 AND crop_year_start_year = $2 AND season_code = $3
		 ORDER BY rice_type_code`,
		orgID, startYear, season)
	if err != nil {
		return nil, fmt.Errorf("seasonRateRepo.ListForSeason: %w", err)
	}
	return rows, nil
}

func (r *seasonRateRepo) Upsert(ctx context.Context, rows []domain.SeasonBagRateRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seasonRateRepo.Upsert begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO season_bag_rates
			   (id, organization_id, crop_year_start_year, season_code, rice_type_code,
			    rate_40, rate_75, rate_100, updated_by, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			 ON CONFLICT (organization_id, crop_year_start_year, season_code, rice_type_code)
			 DO UPDATE SET
			   rate_40 = EXCLUDED.rate_40,
			   rate_75 = EXCLUDED.rate_75,
			   rate_100 = EXCLUDED.rate_100,
			   updated_by = EXCLUDED.updated_by,
			   updated_at = EXCLUDED.updated_at`,
			rows[i].ID, rows[i].OrganizationID, rows[i].CropYearStartYear, rows[i].SeasonCode,
			rows[i].RiceTypeCode, rows[i].Rate40, rows[i].Rate75, rows[i].Rate100,
			rows[i].UpdatedBy, now)
		if err != nil {
			return fmt.Errorf("seasonRateRepo.Upsert %s: %w", rows[i].RiceTypeCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seasonRateRepo.Upsert commit: %w", err)
	}
	return nil
}

func (r *seasonRateRepo) ZeroAll(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode, updatedBy uuid.UUID) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE season_bag_rates
		 SET rate_40 = 0, rate_75 = 0, rate_100 = 0, updated_by = $1, updated_at = $2
		 WHERE organization_id = $3 AND crop_year_start_year = $4 AND season_code = $5`,
		updatedBy, time.Now().UTC(), orgID, startYear, season)
	if err != nil {
		return 0, fmt.Errorf("seasonRateRepo.ZeroAll: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("seasonRateRepo.ZeroAll rows: %w", err)
	}
	return int(rows), nil
}
