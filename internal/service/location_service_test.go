package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"millgate/internal/domain"
	"millgate/internal/service"
	"millgate/mocks"
)

func TestLocationService_Create_StateNeedsNoParent(t *testing.T) {
	repo := new(mocks.MockLocationRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(loc *domain.Location) bool {
		return loc.Level == domain.LevelState && loc.ParentID == nil && loc.Name == "Telangana"
	})).Return(nil)

	svc := service.NewLocationService(repo)
	loc, err := svc.Create(context.Background(), service.CreateLocationInput{
		Level: domain.LevelState,
		Name:  "  Telangana ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Telangana", loc.Name)
}

func TestLocationService_Create_ParentLevelMismatch(t *testing.T) {
	stateID := uuid.New()
	repo := new(mocks.MockLocationRepo)
	repo.On("GetByID", mock.Anything, stateID).Return(&domain.Location{ID: stateID, Level: domain.LevelState}, nil)

	svc := service.NewLocationService(repo)

	// A village's parent must be a mandal, not a state.
	_, err := svc.Create(context.Background(), service.CreateLocationInput{
		Level:    domain.LevelVillage,
		ParentID: &stateID,
		Name:     "Ramannapet",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)

	// Districts require a parent.
	_, err = svc.Create(context.Background(), service.CreateLocationInput{
		Level: domain.LevelDistrict,
		Name:  "Nalgonda",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)

	// States must not carry one.
	_, err = svc.Create(context.Background(), service.CreateLocationInput{
		Level:    domain.LevelState,
		ParentID: &stateID,
		Name:     "Telangana",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)
}

func TestLocationService_Create_ProcurementCenterOnlyAtVillage(t *testing.T) {
	districtID := uuid.New()
	repo := new(mocks.MockLocationRepo)
	repo.On("GetByID", mock.Anything, districtID).Return(&domain.Location{ID: districtID, Level: domain.LevelDistrict}, nil)

	svc := service.NewLocationService(repo)
	_, err := svc.Create(context.Background(), service.CreateLocationInput{
		Level:               domain.LevelMandal,
		ParentID:            &districtID,
		Name:                "Choutuppal",
		IsProcurementCenter: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)
}

func TestLocationService_Delete_BlockedByChildren(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockLocationRepo)
	repo.On("CountChildren", mock.Anything, id).Return(4, nil)

	svc := service.NewLocationService(repo)
	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrLocationHasChildren)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLocationService_Delete_LeafAllowed(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockLocationRepo)
	repo.On("CountChildren", mock.Anything, id).Return(0, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	svc := service.NewLocationService(repo)
	require.NoError(t, svc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
}
