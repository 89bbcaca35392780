package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"millgate/internal/domain"
	"millgate/internal/port"
)

// CreateCropYearInput is the DTO for creating a crop year. The label is
// derived from the start year ("2024" becomes "2024-25").
type CreateCropYearInput struct {
	StartYear int `json:"start_year" binding:"required,min=2000,max=2100"`
}

// CreateRiceTypeInput is the DTO for creating a rice type.
type CreateRiceTypeInput struct {
	Code string `json:"code" binding:"required,min=2,max=20,uppercase"`
	Name string `json:"name" binding:"required,min=2,max=120"`
}

// UpdateRiceTypeInput is the DTO for updating a rice type.
type UpdateRiceTypeInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=120"`
	IsActive *bool   `json:"is_active"`
}

// CreateRiceVarietyInput is the DTO for adding a variety under a rice type.
type CreateRiceVarietyInput struct {
	RiceTypeID uuid.UUID `json:"rice_type_id" binding:"required"`
	Name       string    `json:"name" binding:"required,min=2,max=120"`
}

// CreateByProductInput is the DTO for creating a by-product.
type CreateByProductInput struct {
	Code string `json:"code" binding:"required,min=2,max=20,uppercase"`
	Name string `json:"name" binding:"required,min=2,max=120"`
}

// UpdateByProductInput is the DTO for updating a by-product.
type UpdateByProductInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=120"`
	IsActive *bool   `json:"is_active"`
}

// MasterDataService manages crop years, rice types, varieties, and
// by-products. Master data is shared across organizations.
type MasterDataService interface {
	CreateCropYear(ctx context.Context, input CreateCropYearInput) (*domain.CropYear, error)
	ListCropYears(ctx context.Context, offset, limit int) ([]domain.CropYear, int, error)

	CreateRiceType(ctx context.Context, input CreateRiceTypeInput) (*domain.RiceType, error)
	ListRiceTypes(ctx context.Context, includeInactive bool) ([]domain.RiceType, error)
	UpdateRiceType(ctx context.Context, id uuid.UUID, input UpdateRiceTypeInput) (*domain.RiceType, error)
	DeleteRiceType(ctx context.Context, id uuid.UUID) error

	CreateRiceVariety(ctx context.Context, input CreateRiceVarietyInput) (*domain.RiceVariety, error)
	ListRiceVarieties(ctx context.Context, riceTypeID uuid.UUID) ([]domain.RiceVariety, error)
	DeleteRiceVariety(ctx context.Context, id uuid.UUID) error

	CreateByProduct(ctx context.Context, input CreateByProductInput) (*domain.ByProduct, error)
	ListByProducts(ctx context.Context, includeInactive bool) ([]domain.ByProduct, error)
	UpdateByProduct(ctx context.Context, id uuid.UUID, input UpdateByProductInput) (*domain.ByProduct, error)
	DeleteByProduct(ctx context.Context, id uuid.UUID) error
}

type masterDataService struct {
	cropYearRepo  port.CropYearRepository
	riceTypeRepo  port.RiceTypeRepository
	varietyRepo   port.RiceVarietyRepository
	byProductRepo port.ByProductRepository
}

// NewMasterDataService creates a new MasterDataService implementation.
func NewMasterDataService(
	cropYearRepo port.CropYearRepository,
	riceTypeRepo port.RiceTypeRepository,
	varietyRepo port.RiceVarietyRepository,
	byProductRepo port.ByProductRepository,
) MasterDataService {
	return &masterDataService{
		cropYearRepo:  cropYearRepo,
		riceTypeRepo:  riceTypeRepo,
		varietyRepo:   varietyRepo,
		byProductRepo: byProductRepo,
	}
}

// CropYearLabel formats a start year as the conventional two-season label,
// e.g. 2024 -> "2024-25".
func CropYearLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

func (s *masterDataService) CreateCropYear(ctx context.Context, input CreateCropYearInput) (*domain.CropYear, error) {
	year := &domain.CropYear{
		Label:     CropYearLabel(input.StartYear),
		StartYear: input.StartYear,
	}
	if err := s.cropYearRepo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

func (s *masterDataService) ListCropYears(ctx context.Context, offset, limit int) ([]domain.CropYear, int, error) {
	return s.cropYearRepo.List(ctx, offset, limit)
}

func (s *masterDataService) CreateRiceType(ctx context.Context, input CreateRiceTypeInput) (*domain.RiceType, error) {
	rt := &domain.RiceType{
		Code:     strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:     strings.TrimSpace(input.Name),
		IsActive: true,
	}
	if err := s.riceTypeRepo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *masterDataService) ListRiceTypes(ctx context.Context, includeInactive bool) ([]domain.RiceType, error) {
	return s.riceTypeRepo.List(ctx, includeInactive)
}

func (s *masterDataService) UpdateRiceType(ctx context.Context, id uuid.UUID, input UpdateRiceTypeInput) (*domain.RiceType, error) {
	rt, err := s.riceTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		rt.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsActive != nil {
		rt.IsActive = *input.IsActive
	}
	if err := s.riceTypeRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *masterDataService) DeleteRiceType(ctx context.Context, id uuid.UUID) error {
	return s.riceTypeRepo.Delete(ctx, id)
}

func (s *masterDataService) CreateRiceVariety(ctx context.Context, input CreateRiceVarietyInput) (*domain.RiceVariety, error) {
	if _, err := s.riceTypeRepo.GetByID(ctx, input.RiceTypeID); err != nil {
		return nil, err
	}
	v := &domain.RiceVariety{
		RiceTypeID: input.RiceTypeID,
		Name:       strings.TrimSpace(input.Name),
		IsActive:   true,
	}
	if err := s.varietyRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *masterDataService) ListRiceVarieties(ctx context.Context, riceTypeID uuid.UUID) ([]domain.RiceVariety, error) {
	return s.varietyRepo.ListByRiceType(ctx, riceTypeID)
}

func (s *masterDataService) DeleteRiceVariety(ctx context.Context, id uuid.UUID) error {
	return s.varietyRepo.Delete(ctx, id)
}

func (s *masterDataService) CreateByProduct(ctx context.Context, input CreateByProductInput) (*domain.ByProduct, error) {
	bp := &domain.ByProduct{
		Code:     strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:     strings.TrimSpace(input.Name),
		IsActive: true,
	}
	if err := s.byProductRepo.Create(ctx, bp); err != nil {
		return nil, err
	}
	return bp, nil
}

func (s *masterDataService) ListByProducts(ctx context.Context, includeInactive bool) ([]domain.ByProduct, error) {
	return s.byProductRepo.List(ctx, includeInactive)
}

func (s *masterDataService) UpdateByProduct(ctx context.Context, id uuid.UUID, input UpdateByProductInput) (*domain.ByProduct, error) {
	products, err := s.byProductRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var bp *domain.ByProduct
	for i := range products {
		if products[i].ID == id {
			bp = &products[i]
			break
		}
	}
	if bp == nil {
		return nil, domain.ErrNotFound
	}
	if input.Name != nil {
		bp.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsActive != nil {
		bp.IsActive = *input.IsActive
	}
	if err := s.byProductRepo.Update(ctx, bp); err != nil {
		return nil, err
	}
	return bp, nil
}

func (s *masterDataService) DeleteByProduct(ctx context.Context, id uuid.UUID) error {
	return s.byProductRepo.Delete(ctx, id)
}
