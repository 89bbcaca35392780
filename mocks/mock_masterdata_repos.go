package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"millgate/internal/domain"
)

// MockCropYearRepo is a mock implementation of port.CropYearRepository.
type MockCropYearRepo struct {
	mock.Mock
}

func (m *MockCropYearRepo) Create(ctx context.Context, year *domain.CropYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockCropYearRepo) GetByStartYear(ctx context.Context, startYear int) (*domain.CropYear, error) {
	args := m.Called(ctx, startYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CropYear), args.Error(1)
}

func (m *MockCropYearRepo) List(ctx context.Context, offset, limit int) ([]domain.CropYear, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CropYear), args.Int(1), args.Error(2)
}

// MockRiceTypeRepo is a mock implementation of port.RiceTypeRepository.
type MockRiceTypeRepo struct {
	mock.Mock
}

func (m *MockRiceTypeRepo) Create(ctx context.Context, rt *domain.RiceType) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRiceTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RiceType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiceType), args.Error(1)
}

func (m *MockRiceTypeRepo) List(ctx context.Context, includeInactive bool) ([]domain.RiceType, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiceType), args.Error(1)
}

func (m *MockRiceTypeRepo) Update(ctx context.Context, rt *domain.RiceType) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRiceTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRiceVarietyRepo is a mock implementation of port.RiceVarietyRepository.
type MockRiceVarietyRepo struct {
	mock.Mock
}

func (m *MockRiceVarietyRepo) Create(ctx context.Context, v *domain.RiceVariety) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRiceVarietyRepo) ListByRiceType(ctx context.Context, riceTypeID uuid.UUID) ([]domain.RiceVariety, error) {
	args := m.Called(ctx, riceTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiceVariety), args.Error(1)
}

func (m *MockRiceVarietyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockByProductRepo is a mock implementation of port.ByProductRepository.
type MockByProductRepo struct {
	mock.Mock
}

func (m *MockByProductRepo) Create(ctx context.Context, bp *domain.ByProduct) error {
	args := m.Called(ctx, bp)
	return args.Error(0)
}

func (m *MockByProductRepo) List(ctx context.Context, includeInactive bool) ([]domain.ByProduct, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ByProduct), args.Error(1)
}

func (m *MockByProductRepo) Update(ctx context.Context, bp *domain.ByProduct) error {
	args := m.Called(ctx, bp)
	return args.Error(0)
}

func (m *MockByProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
