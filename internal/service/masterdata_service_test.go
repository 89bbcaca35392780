package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"millgate/internal/domain"
	"millgate/internal/service"
	"millgate/mocks"
)

func newMasterDataService() (service.MasterDataService, *mocks.MockCropYearRepo, *mocks.MockRiceTypeRepo) {
	cropYearRepo := new(mocks.MockCropYearRepo)
	riceTypeRepo := new(mocks.MockRiceTypeRepo)
	svc := service.NewMasterDataService(cropYearRepo, riceTypeRepo, new(mocks.MockRiceVarietyRepo), new(mocks.MockByProductRepo))
	return svc, cropYearRepo, riceTypeRepo
}

func TestCropYearLabel(t *testing.T) {
	assert.Equal(t, "2024-25", service.CropYearLabel(2024))
	assert.Equal(t, "2099-00", service.CropYearLabel(2099))
	assert.Equal(t, "2008-09", service.CropYearLabel(2008))
}

func TestMasterDataService_CreateCropYear_DerivesLabel(t *testing.T) {
	svc, cropYearRepo, _ := newMasterDataService()
	cropYearRepo.On("Create", mock.Anything, mock.MatchedBy(func(y *domain.CropYear) bool {
		return y.StartYear == 2024 && y.Label == "2024-25"
	})).Return(nil)

	year, err := svc.CreateCropYear(context.Background(), service.CreateCropYearInput{StartYear: 2024})
	require.NoError(t, err)
	assert.Equal(t, "2024-25", year.Label)
	cropYearRepo.AssertExpectations(t)
}

func TestMasterDataService_CreateRiceType_NormalizesCode(t *testing.T) {
	svc, _, riceTypeRepo := newMasterDataService()
	riceTypeRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *domain.RiceType) bool {
		return rt.Code == "SONA" && rt.Name == "Sona Masoori" && rt.IsActive
	})).Return(nil)

	rt, err := svc.CreateRiceType(context.Background(), service.CreateRiceTypeInput{
		Code: " sona ",
		Name: " Sona Masoori ",
	})
	require.NoError(t, err)
	assert.Equal(t, "SONA", rt.Code)
}

func TestMasterDataService_CreateRiceType_DuplicateCode(t *testing.T) {
	svc, _, riceTypeRepo := newMasterDataService()
	riceTypeRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateCode)

	_, err := svc.CreateRiceType(context.Background(), service.CreateRiceTypeInput{Code: "SONA", Name: "Sona"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestMasterDataService_UpdateRiceType_Deactivate(t *testing.T) {
	svc, _, riceTypeRepo := newMasterDataService()
	existing := &domain.RiceType{Code: "SONA", Name: "Sona Masoori", IsActive: true}
	riceTypeRepo.On("GetByID", mock.Anything, mock.Anything).Return(existing, nil)
	riceTypeRepo.On("Update", mock.Anything, mock.MatchedBy(func(rt *domain.RiceType) bool {
		return !rt.IsActive && rt.Name == "Sona Masoori"
	})).Return(nil)

	inactive := false
	rt, err := svc.UpdateRiceType(context.Background(), existing.ID, service.UpdateRiceTypeInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, rt.IsActive)
}
