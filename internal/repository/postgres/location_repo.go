package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"millgate/internal/domain"
	"millgate/internal/port"
)

type locationRepo struct {
	db *sqlx.DB
}

// NewLocationRepo creates a new PostgreSQL-backed LocationRepository.
func NewLocationRepo(db *sqlx.DB) port.LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *domain.Location) error {
	loc.ID = uuid.New()
	now := time.Now().UTC()
	loc.CreatedAt = now
	loc.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (id, level, parent_id, name, is_procurement_center, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		loc.ID, loc.Level, loc.ParentID, loc.Name, loc.IsProcurementCenter, loc.CreatedAt, loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("locationRepo.Create: %w", err)
	}
	return nil
}

func (r *locationRepo) CreateBatch(ctx context.Context, locs []domain.Location) error {
	if len(locs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("locationRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range locs {
		locs[i].ID = uuid.New()
		locs[i].CreatedAt = now
		locs[i].UpdatedAt = now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO locations (id, level, parent_id, name, is_procurement_center, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			locs[i].ID, locs[i].Level, locs[i].ParentID, locs[i].Name, locs[i].IsProcurementCenter, now, now)
		if err != nil {
			return fmt.Errorf("locationRepo.CreateBatch insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("locationRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	var loc domain.Location
	err := r.db.GetContext(ctx, &loc, "SELECT * FROM locations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("locationRepo.GetByID: %w", err)
	}
	return &loc, nil
}

func (r *locationRepo) ListByLevel(ctx context.Context, level domain.LocationLevel, parentID *uuid.UUID, offset, limit int) ([]domain.Location, int, error) {
	countQuery := "SELECT COUNT(*) FROM locations WHERE level = $1"
	listQuery := "SELECT * FROM locations WHERE level = $1 ORDER BY name LIMIT $2 OFFSET $3"
	countArgs := []interface{}{level}
	listArgs := []interface{}{level, limit, offset}
	if parentID != nil {
		countQuery = "SELECT COUNT(*) FROM locations WHERE level = $1 AND parent_id = $2"
		listQuery = "SELECT * FROM locations WHERE level = $1 AND parent_id = $2 ORDER BY name LIMIT $3 OFFSET $4"
		countArgs = append(countArgs, *parentID)
		listArgs = []interface{}{level, *parentID, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("locationRepo.ListByLevel count: %w", err)
	}

	var locs []domain.Location
	if err := r.db.SelectContext(ctx, &locs, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("locationRepo.ListByLevel: %w", err)
	}
	return locs, total, nil
}

func (r *locationRepo) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM locations WHERE parent_id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("locationRepo.CountChildren: %w", err)
	}
	return count, nil
}

func (r *locationRepo) Update(ctx context.Context, loc *domain.Location) error {
	loc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE locations SET name = $1, is_procurement_center = $2, updated_at = $3 WHERE id = $4`,
		loc.Name, loc.IsProcurementCenter, loc.UpdatedAt, loc.ID)
	if err != nil {
		return fmt.Errorf("locationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("locationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
