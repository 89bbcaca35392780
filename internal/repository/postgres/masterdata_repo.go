package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"millgate/internal/domain"
	"millgate/internal/port"
)

type cropYearRepo struct {
	db *sqlx.DB
}

// NewCropYearRepo creates a new PostgreSQL-backed CropYearRepository.
func NewCropYearRepo(db *sqlx.DB) port.CropYearRepository {
	return &cropYearRepo{db: db}
}

func (r *cropYearRepo) Create(ctx context.Context, year *domain.CropYear) error {
	year.ID = uuid.New()
	year.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO crop_years (id, label, start_year, created_at) VALUES ($1, $2, $3, $4)`,
		year.ID, year.Label, year.StartYear, year.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCropYear
		}
		return fmt.Errorf("cropYearRepo.Create: %w", err)
	}
	return nil
}

func (r *cropYearRepo) GetByStartYear(ctx context.Context, startYear int) (*domain.CropYear, error) {
	var year domain.CropYear
	err := r.db.GetContext(ctx, &year, "SELECT * FROM crop_years WHERE start_year = $1", startYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCropYearNotFound
		}
		return nil, fmt.Errorf("cropYearRepo.GetByStartYear: %w", err)
	}
	return &year, nil
}

func (r *cropYearRepo) List(ctx context.Context, offset, limit int) ([]domain.CropYear, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM crop_years"); err != nil {
		return nil, 0, fmt.Errorf("cropYearRepo.List count: %w", err)
	}

	var years []domain.CropYear
	err := r.db.SelectContext(ctx, &years,
		"SELECT * FROM crop_years ORDER BY start_year DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("cropYearRepo.List: %w", err)
	}
	return years, total, nil
}

type riceTypeRepo struct {
	db *sqlx.DB
}

// NewRiceTypeRepo creates a new PostgreSQL-backed RiceTypeRepository.
func NewRiceTypeRepo(db *sqlx.DB) port.RiceTypeRepository {
	return &riceTypeRepo{db: db}
}

func (r *riceTypeRepo) Create(ctx context.Context, rt *domain.RiceType) error {
	rt.ID = uuid.New()
	now := time.Now().UTC()
	rt.CreatedAt = now
	rt.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rice_types (id, code, name, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rt.ID, rt.Code, rt.Name, rt.IsActive, rt.CreatedAt, rt.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("riceTypeRepo.Create: %w", err)
	}
	return nil
}

func (r *riceTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RiceType, error) {
	var rt domain.RiceType
	err := r.db.GetContext(ctx, &rt, "SELECT * FROM rice_types WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("riceTypeRepo.GetByID: %w", err)
	}
	return &rt, nil
}

func (r *riceTypeRepo) List(ctx context.Context, includeInactive bool) ([]domain.RiceType, error) {
	query := "SELECT * FROM rice_types ORDER BY code"
	if !includeInactive {
		query = "SELECT * FROM rice_types WHERE is_active ORDER BY code"
	}
	var types []domain.RiceType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("riceTypeRepo.List: %w", err)
	}
	return types, nil
}

func (r *riceTypeRepo) Update(ctx context.Context, rt *domain.RiceType) error {
	rt.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE rice_types SET code = $1, name = $2, is_active = $3, updated_at = $4 WHERE id = $5`,
		rt.Code, rt.Name, rt.IsActive, rt.UpdatedAt, rt.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("riceTypeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *riceTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM rice_types WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("riceTypeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type riceVarietyRepo struct {
	db *sqlx.DB
}

// NewRiceVarietyRepo creates a new PostgreSQL-backed RiceVarietyRepository.
func NewRiceVarietyRepo(db *sqlx.DB) port.RiceVarietyRepository {
	return &riceVarietyRepo{db: db}
}

func (r *riceVarietyRepo) Create(ctx context.Context, v *domain.RiceVariety) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rice_varieties (id, rice_type_id, name, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.RiceTypeID, v.Name, v.IsActive, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("riceVarietyRepo.Create: %w", err)
	}
	return nil
}

func (r *riceVarietyRepo) ListByRiceType(ctx context.Context, riceTypeID uuid.UUID) ([]domain.RiceVariety, error) {
	var varieties []domain.RiceVariety
	err := r.db.SelectContext(ctx, &varieties,
		"SELECT * FROM rice_varieties WHERE rice_type_id = $1 ORDER BY name", riceTypeID)
	if err != nil {
		return nil, fmt.Errorf("riceVarietyRepo.ListByRiceType: %w", err)
	}
	return varieties, nil
}

func (r *riceVarietyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM rice_varieties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("riceVarietyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type byProductRepo struct {
	db *sqlx.DB
}

// NewByProductRepo creates a new PostgreSQL-backed ByProductRepository.
func NewByProductRepo(db *sqlx.DB) port.ByProductRepository {
	return &byProductRepo{db: db}
}

func (r *byProductRepo) Create(ctx context.Context, bp *domain.ByProduct) error {
	bp.ID = uuid.New()
	bp.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO by_products (id, code, name, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		bp.ID, bp.Code, bp.Name, bp.IsActive, bp.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("byProductRepo.Create: %w", err)
	}
	return nil
}

func (r *byProductRepo) List(ctx context.Context, includeInactive bool) ([]domain.ByProduct, error) {
	query := "SELECT * FROM by_products ORDER BY code"
	if !includeInactive {
		query = "SELECT * FROM by_products WHERE is_active ORDER BY code"
	}
	var products []domain.ByProduct
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("byProductRepo.List: %w", err)
	}
	return products, nil
}

func (r *byProductRepo) Update(ctx context.Context, bp *domain.ByProduct) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE by_products SET code = $1, name = $2, is_active = $3 WHERE id = $4`,
		bp.Code, bp.Name, bp.IsActive, bp.ID)
	if err != nil {
		return fmt.Errorf("byProductRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *byProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM by_products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("byProductRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
