package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"millgate/internal/domain"
	"millgate/internal/port"
	"millgate/internal/service"
	"millgate/internal/wire"
	"millgate/mocks"
)

func ptr(v float64) *float64 { return &v }

type rateServiceFixture struct {
	rateRepo     *mocks.MockSeasonRateRepo
	riceTypeRepo *mocks.MockRiceTypeRepo
	cropYearRepo *mocks.MockCropYearRepo
	orgRepo      *mocks.MockOrganizationRepo
	userRepo     *mocks.MockUserRepo
	email        *mocks.MockEmailSender
	svc          service.SeasonRateService
	orgID        uuid.UUID
	userID       uuid.UUID
}

func newRateServiceFixture() *rateServiceFixture {
	f := &rateServiceFixture{
		rateRepo:     new(mocks.MockSeasonRateRepo),
		riceTypeRepo: new(mocks.MockRiceTypeRepo),
		cropYearRepo: new(mocks.MockCropYearRepo),
		orgRepo:      new(mocks.MockOrganizationRepo),
		userRepo:     new(mocks.MockUserRepo),
		email:        new(mocks.MockEmailSender),
		orgID:        uuid.New(),
		userID:       uuid.New(),
	}
	f.svc = service.NewSeasonRateService(f.rateRepo, f.riceTypeRepo, f.cropYearRepo, f.orgRepo, f.userRepo, f.email)
	return f
}

func cropYear2024() *domain.CropYear {
	return &domain.CropYear{ID: uuid.New(), Label: "2024-25", StartYear: 2024}
}

func activeRiceTypes() []domain.RiceType {
	return []domain.RiceType{
		{ID: uuid.New(), Code: "BPT", Name: "BPT 5204", IsActive: true},
		{ID: uuid.New(), Code: "SONA", Name: "Sona Masoori", IsActive: true},
	}
}

func TestSeasonRateService_List_FillsMissingRowsWithNulls(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return(activeRiceTypes(), nil)
	f.rateRepo.On("ListForSeason", mock.Anything, f.orgID, 2024, domain.SeasonKharif).Return([]domain.SeasonBagRateRow{
		{RiceTypeCode: "SONA", Rate40: ptr(1060.13), Rate75: ptr(1987.74), Rate100: ptr(2650.33)},
	}, nil)

	items, err := f.svc.List(context.Background(), f.orgID, 2024, domain.SeasonKharif)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Active type with no stored row surfaces with all rates null.
	assert.Equal(t, "BPT", items[0].RiceType.Code)
	for _, size := range domain.BagSizes {
		assert.Nil(t, items[0].Rates[size])
	}

	assert.Equal(t, "SONA", items[1].RiceType.Code)
	require.NotNil(t, items[1].Rates[domain.Bag100])
	assert.Equal(t, 2650.33, *items[1].Rates[domain.Bag100])
}

func TestSeasonRateService_List_HidesDeactivatedRiceTypeRows(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return(activeRiceTypes(), nil)
	f.rateRepo.On("ListForSeason", mock.Anything, f.orgID, 2024, domain.SeasonRabi).Return([]domain.SeasonBagRateRow{
		{RiceTypeCode: "RETIRED", Rate100: ptr(1800)},
	}, nil)

	items, err := f.svc.List(context.Background(), f.orgID, 2024, domain.SeasonRabi)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, "RETIRED", item.RiceType.Code)
	}
}

func TestSeasonRateService_List_InvalidSeason(t *testing.T) {
	f := newRateServiceFixture()

	_, err := f.svc.List(context.Background(), f.orgID, 2024, "SUMMER")
	assert.ErrorIs(t, err, domain.ErrInvalidSeasonCode)
}

func TestSeasonRateService_Save_RederivesDependentRates(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, true).Return(activeRiceTypes(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return(activeRiceTypes(), nil)
	f.rateRepo.On("ListForSeason", mock.Anything, f.orgID, 2024, domain.SeasonKharif).Return([]domain.SeasonBagRateRow{}, nil)

	f.rateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(rows []domain.SeasonBagRateRow) bool {
		if len(rows) != 1 || rows[0].RiceTypeCode != "SONA" {
			return false
		}
		// Dependent rates come from the base, truncated, regardless of what
		// the client claimed they were.
		return *rows[0].Rate100 == 2650.33 && *rows[0].Rate75 == 1987.74 && *rows[0].Rate40 == 1060.13
	})).Return(nil)

	_, err := f.svc.Save(context.Background(), f.orgID, f.userID, wire.UpsertRequest{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonKharif,
		Rates: []wire.RiceTypeRates{
			{
				RiceTypeCode: "SONA",
				Rates: map[domain.BagSize]*float64{
					domain.Bag100: ptr(2650.33),
					domain.Bag75:  ptr(9999),
					domain.Bag40:  ptr(9999),
				},
			},
		},
	})
	require.NoError(t, err)
	f.rateRepo.AssertExpectations(t)
}

func TestSeasonRateService_Save_RejectsNegativeBase(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, true).Return(activeRiceTypes(), nil)

	_, err := f.svc.Save(context.Background(), f.orgID, f.userID, wire.UpsertRequest{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonKharif,
		Rates: []wire.RiceTypeRates{
			{RiceTypeCode: "SONA", Rates: map[domain.BagSize]*float64{domain.Bag100: ptr(-1)}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
	f.rateRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSeasonRateService_Save_RejectsUnknownRiceType(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, true).Return(activeRiceTypes(), nil)

	_, err := f.svc.Save(context.Background(), f.orgID, f.userID, wire.UpsertRequest{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonKharif,
		Rates: []wire.RiceTypeRates{
			{RiceTypeCode: "NOPE", Rates: map[domain.BagSize]*float64{domain.Bag100: ptr(100)}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeasonRateService_SaveLegacy_FoldsFlatRecords(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, true).Return(activeRiceTypes(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return(activeRiceTypes(), nil)
	f.rateRepo.On("ListForSeason", mock.Anything, f.orgID, 2024, domain.SeasonKharif).Return([]domain.SeasonBagRateRow{}, nil)

	f.rateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(rows []domain.SeasonBagRateRow) bool {
		return len(rows) == 1 && rows[0].RiceTypeCode == "SONA" &&
			*rows[0].Rate100 == 2000 && *rows[0].Rate75 == 1500 && *rows[0].Rate40 == 800
	})).Return(nil)

	_, err := f.svc.SaveLegacy(context.Background(), f.orgID, f.userID, wire.LegacyUpsertRequest{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonKharif,
		Rates: []wire.LegacyUpsertRecord{
			{RiceTypeCode: "SONA", BagSize: domain.Bag40, RateRupees: 123},
			{RiceTypeCode: "SONA", BagSize: domain.Bag75, RateRupees: 456},
			{RiceTypeCode: "SONA", BagSize: domain.Bag100, RateRupees: 2000},
		},
	})
	require.NoError(t, err)
	f.rateRepo.AssertExpectations(t)
}

func TestSeasonRateService_Reset_RequiresExactConfirmText(t *testing.T) {
	f := newRateServiceFixture()

	for _, confirm := range []string{"", "reset", "RESET ", "DELETE"} {
		_, err := f.svc.Reset(context.Background(), f.orgID, f.userID, service.ResetInput{
			CropYearStartYear: 2024,
			SeasonCode:        domain.SeasonKharif,
			Confirm:           confirm,
		})
		assert.ErrorIs(t, err, domain.ErrResetNotConfirmed, "confirm %q", confirm)
	}
	f.rateRepo.AssertNotCalled(t, "ZeroAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSeasonRateService_Reset_NoActiveRiceTypes(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return([]domain.RiceType{}, nil)

	_, err := f.svc.Reset(context.Background(), f.orgID, f.userID, service.ResetInput{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonKharif,
		Confirm:           domain.ResetConfirmToken,
	})
	assert.ErrorIs(t, err, domain.ErrNoActiveRiceTypes)
}

func TestSeasonRateService_Reset_ZeroesAndNotifies(t *testing.T) {
	f := newRateServiceFixture()
	admin := &domain.Organization{ID: f.orgID, Name: "Sri Lakshmi Rice Mill", AdminEmail: "owner@mill.example"}

	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return(activeRiceTypes(), nil)
	f.rateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(rows []domain.SeasonBagRateRow) bool {
		if len(rows) != 2 {
			return false
		}
		for _, row := range rows {
			if row.Rate100 == nil || *row.Rate100 != 0 {
				return false
			}
		}
		return true
	})).Return(nil)
	f.rateRepo.On("ZeroAll", mock.Anything, f.orgID, 2024, domain.SeasonKharif, f.userID).Return(3, nil)
	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(admin, nil)
	f.userRepo.On("GetByID", mock.Anything, f.orgID, f.userID).Return(&domain.User{Email: "operator@mill.example"}, nil)
	f.email.On("SendRateResetNotice", mock.Anything, "owner@mill.example", mock.MatchedBy(func(n port.ResetNotice) bool {
		return n.RowsZeroed == 3 && n.CropYearLabel == "2024-25" && n.PerformedByEmail == "operator@mill.example"
	})).Return(nil)
	f.rateRepo.On("ListForSeason", mock.Anything, f.orgID, 2024, domain.SeasonKharif).Return([]domain.SeasonBagRateRow{
		{RiceTypeCode: "BPT", Rate40: ptr(0), Rate75: ptr(0), Rate100: ptr(0)},
		{RiceTypeCode: "SONA", Rate40: ptr(0), Rate75: ptr(0), Rate100: ptr(0)},
	}, nil)

	result, err := f.svc.Reset(context.Background(), f.orgID, f.userID, service.ResetInput{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonKharif,
		Confirm:           domain.ResetConfirmToken,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowsZeroed)
	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.Equal(t, 0.0, *item.Rates[domain.Bag100])
	}
	f.email.AssertExpectations(t)
}

func TestSeasonRateService_Reset_EmailFailureDoesNotFailReset(t *testing.T) {
	f := newRateServiceFixture()
	f.cropYearRepo.On("GetByStartYear", mock.Anything, 2024).Return(cropYear2024(), nil)
	f.riceTypeRepo.On("List", mock.Anything, false).Return(activeRiceTypes(), nil)
	f.rateRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.rateRepo.On("ZeroAll", mock.Anything, f.orgID, 2024, domain.SeasonRabi, f.userID).Return(2, nil)
	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(&domain.Organization{ID: f.orgID, AdminEmail: "owner@mill.example"}, nil)
	f.userRepo.On("GetByID", mock.Anything, f.orgID, f.userID).Return(&domain.User{Email: "op@mill.example"}, nil)
	f.email.On("SendRateResetNotice", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	f.rateRepo.On("ListForSeason", mock.Anything, f.orgID, 2024, domain.SeasonRabi).Return([]domain.SeasonBagRateRow{}, nil)

	result, err := f.svc.Reset(context.Background(), f.orgID, f.userID, service.ResetInput{
		CropYearStartYear: 2024,
		SeasonCode:        domain.SeasonRabi,
		Confirm:           domain.ResetConfirmToken,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsZeroed)
}
