package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"millgate/internal/domain"
)

// MockLocationRepo is a mock implementation of port.LocationRepository.
type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) Create(ctx context.Context, loc *domain.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepo) CreateBatch(ctx context.Context, locs []domain.Location) error {
	args := m.Called(ctx, locs)
	return args.Error(0)
}

func (m *MockLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepo) ListByLevel(ctx context.Context, level domain.LocationLevel, parentID *uuid.UUID, offset, limit int) ([]domain.Location, int, error) {
	args := m.Called(ctx, level, parentID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Location), args.Int(1), args.Error(2)
}

func (m *MockLocationRepo) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockLocationRepo) Update(ctx context.Context, loc *domain.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
