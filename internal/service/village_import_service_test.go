package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"millgate/internal/domain"
	"millgate/internal/port"
	"millgate/internal/service"
	"millgate/mocks"
)

func TestVillageImportService_Import(t *testing.T) {
	mandalID := uuid.New()
	orgID := uuid.New()

	csv := fmt.Sprintf(`mandal_id,name,is_procurement_center
%s,Ramannapet,true
%s,Velminedu,
bad-uuid,Nowhere,false
%s,,true
`, mandalID, mandalID, mandalID)

	locationRepo := new(mocks.MockLocationRepo)
	locationRepo.On("GetByID", mock.Anything, mandalID).Return(&domain.Location{ID: mandalID, Level: domain.LevelMandal}, nil).Once()
	locationRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(locs []domain.Location) bool {
		return len(locs) == 2 &&
			locs[0].Name == "Ramannapet" && locs[0].IsProcurementCenter &&
			locs[1].Name == "Velminedu" && !locs[1].IsProcurementCenter
	})).Return(nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "millgate-uploads" &&
			strings.HasPrefix(in.Key, "village-uploads/"+orgID.String()+"/") &&
			strings.HasSuffix(in.Key, "villages.csv") &&
			in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{Location: "s3://millgate-uploads/x"}, nil)

	svc := service.NewVillageImportService(locationRepo, storage, "millgate-uploads")
	result, err := svc.Import(context.Background(), orgID, "villages.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.RowErrors, 2)
	// Line numbers include the header row.
	assert.Equal(t, 4, result.RowErrors[0].Line)
	assert.Contains(t, result.RowErrors[0].Reason, "invalid mandal id")
	assert.Equal(t, 5, result.RowErrors[1].Line)
	assert.Contains(t, result.RowErrors[1].Reason, "name is empty")

	locationRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestVillageImportService_Import_UnknownMandalRejectsRows(t *testing.T) {
	mandalID := uuid.New()
	csv := fmt.Sprintf("mandal_id,name\n%s,Somewhere\n%s,Elsewhere\n", mandalID, mandalID)

	locationRepo := new(mocks.MockLocationRepo)
	locationRepo.On("GetByID", mock.Anything, mandalID).Return(nil, domain.ErrNotFound).Once()

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)

	svc := service.NewVillageImportService(locationRepo, storage, "millgate-uploads")
	result, err := svc.Import(context.Background(), uuid.New(), "v.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Skipped)
	// The repository is consulted once per distinct mandal ID, not per row.
	locationRepo.AssertNumberOfCalls(t, "GetByID", 1)
	locationRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestVillageImportService_Import_ArchiveFailureSurfaces(t *testing.T) {
	mandalID := uuid.New()
	csv := fmt.Sprintf("mandal_id,name\n%s,Somewhere\n", mandalID)

	locationRepo := new(mocks.MockLocationRepo)
	locationRepo.On("GetByID", mock.Anything, mandalID).Return(&domain.Location{ID: mandalID, Level: domain.LevelMandal}, nil)
	locationRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	svc := service.NewVillageImportService(locationRepo, storage, "millgate-uploads")
	_, err := svc.Import(context.Background(), uuid.New(), "v.csv", strings.NewReader(csv))
	assert.Error(t, err)
}
