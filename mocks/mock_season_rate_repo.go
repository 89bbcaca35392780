package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"millgate/internal/domain"
)

// MockSeasonRateRepo is a mock implementation of port.SeasonRateRepository.
type MockSeasonRateRepo struct {
	mock.Mock
}

func (m *MockSeasonRateRepo) ListForSeason(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRateRow, error) {
	args := m.Called(ctx, orgID, startYear, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeasonBagRateRow), args.Error(1)
}

func (m *MockSeasonRateRepo) Upsert(ctx context.Context, rows []domain.SeasonBagRateRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockSeasonRateRepo) ZeroAll(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode, updatedBy uuid.UUID) (int, error) {
	args := m.Called(ctx, orgID, startYear, season, updatedBy)
	return args.Int(0), args.Error(1)
}
