package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"millgate/internal/domain"
	"millgate/internal/port"
)

// CreateLocationInput is the DTO for creating one node of the geographic
// hierarchy.
type CreateLocationInput struct {
	Level               domain.LocationLevel `json:"level" binding:"required,oneof=state district mandal village"`
	ParentID            *uuid.UUID           `json:"parent_id"`
	Name                string               `json:"name" binding:"required,min=2,max=120"`
	IsProcurementCenter bool                 `json:"is_procurement_center"`
}

// UpdateLocationInput is the DTO for updating a location.
type UpdateLocationInput struct {
	Name                *string `json:"name" binding:"omitempty,min=2,max=120"`
	IsProcurementCenter *bool   `json:"is_procurement_center"`
}

// parentLevel maps each level to the level its parent must have. States have
// no parent.
var parentLevel = map[domain.LocationLevel]domain.LocationLevel{
	domain.LevelDistrict: domain.LevelState,
	domain.LevelMandal:   domain.LevelDistrict,
	domain.LevelVillage:  domain.LevelMandal,
}

// LocationService manages the state → district → mandal → village hierarchy.
type LocationService interface {
	Create(ctx context.Context, input CreateLocationInput) (*domain.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	ListByLevel(ctx context.Context, level domain.LocationLevel, parentID *uuid.UUID, offset, limit int) ([]domain.Location, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLocationInput) (*domain.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type locationService struct {
	locationRepo port.LocationRepository
}

// NewLocationService creates a new LocationService implementation.
func NewLocationService(locationRepo port.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) Create(ctx context.Context, input CreateLocationInput) (*domain.Location, error) {
	wantParent, needsParent := parentLevel[input.Level]
	if needsParent {
		if input.ParentID == nil {
			return nil, domain.ErrInvalidParent
		}
		parent, err := s.locationRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, domain.ErrInvalidParent
		}
		if parent.Level != wantParent {
			return nil, domain.ErrInvalidParent
		}
	} else if input.ParentID != nil {
		return nil, domain.ErrInvalidParent
	}

	// Procurement centers exist only at village level.
	if input.IsProcurementCenter && input.Level != domain.LevelVillage {
		return nil, domain.ErrInvalidParent
	}

	loc := &domain.Location{
		Level:               input.Level,
		ParentID:            input.ParentID,
		Name:                strings.TrimSpace(input.Name),
		IsProcurementCenter: input.IsProcurementCenter,
	}
	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) ListByLevel(ctx context.Context, level domain.LocationLevel, parentID *uuid.UUID, offset, limit int) ([]domain.Location, int, error) {
	return s.locationRepo.ListByLevel(ctx, level, parentID, offset, limit)
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, input UpdateLocationInput) (*domain.Location, error) {
	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		loc.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsProcurementCenter != nil {
		if *input.IsProcurementCenter && loc.Level != domain.LevelVillage {
			return nil, domain.ErrInvalidParent
		}
		loc.IsProcurementCenter = *input.IsProcurementCenter
	}
	if err := s.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.locationRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrLocationHasChildren
	}
	return s.locationRepo.Delete(ctx, id)
}
