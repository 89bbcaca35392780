package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"millgate/internal/domain"
	"millgate/internal/port"
	"millgate/internal/ratecodec"
	"millgate/internal/wire"
)

// ResetInput is the DTO for a season-rate reset request. Confirm must carry
// the exact confirmation token or the reset is refused.
type ResetInput struct {
	CropYearStartYear int               `json:"cropYearStartYear" binding:"required"`
	SeasonCode        domain.SeasonCode `json:"seasonCode" binding:"required"`
	Confirm           string            `json:"confirm" binding:"required"`
}

// ResetResult reports a completed reset.
type ResetResult struct {
	RowsZeroed int
	Items      []domain.SeasonBagRate
}

// SeasonRateService owns the season bag-rate pricing matrix. The 100kg rate
// is the single source of truth: the 75kg and 40kg rates are always
// re-derived here regardless of what the client sent.
type SeasonRateService interface {
	List(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRate, error)
	Save(ctx context.Context, orgID, userID uuid.UUID, req wire.UpsertRequest) ([]domain.SeasonBagRate, error)
	SaveLegacy(ctx context.Context, orgID, userID uuid.UUID, req wire.LegacyUpsertRequest) ([]domain.SeasonBagRate, error)
	Reset(ctx context.Context, orgID, userID uuid.UUID, input ResetInput) (*ResetResult, error)
}

type seasonRateService struct {
	rateRepo     port.SeasonRateRepository
	riceTypeRepo port.RiceTypeRepository
	cropYearRepo port.CropYearRepository
	orgRepo      port.OrganizationRepository
	userRepo     port.UserRepository
	email        port.EmailSender
}

// NewSeasonRateService creates a new SeasonRateService implementation.
func NewSeasonRateService(
	rateRepo port.SeasonRateRepository,
	riceTypeRepo port.RiceTypeRepository,
	cropYearRepo port.CropYearRepository,
	orgRepo port.OrganizationRepository,
	userRepo port.UserRepository,
	email port.EmailSender,
) SeasonRateService {
	return &seasonRateService{
		rateRepo:     rateRepo,
		riceTypeRepo: riceTypeRepo,
		cropYearRepo: cropYearRepo,
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		email:        email,
	}
}

// List returns one grouped entry per active rice type, in code order. Stored
// rows for deactivated rice types are preserved in the database but not
// returned; rows missing entirely surface as entries with all rates null.
func (s *seasonRateService) List(ctx context.Context, orgID uuid.UUID, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRate, error) {
	if !season.Valid() {
		return nil, domain.ErrInvalidSeasonCode
	}
	if _, err := s.cropYearRepo.GetByStartYear(ctx, startYear); err != nil {
		return nil, err
	}

	activeTypes, err := s.riceTypeRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("seasonRate.List: %w", err)
	}

	rows, err := s.rateRepo.ListForSeason(ctx, orgID, startYear, season)
	if err != nil {
		return nil, fmt.Errorf("seasonRate.List: %w", err)
	}
	byCode := make(map[string]domain.SeasonBagRateRow, len(rows))
	for _, row := range rows {
		byCode[row.RiceTypeCode] = row
	}

	items := make([]domain.SeasonBagRate, 0, len(activeTypes))
	for _, rt := range activeTypes {
		entry := domain.SeasonBagRate{
			CropYearStartYear: startYear,
			SeasonCode:        season,
			RiceType:          domain.RiceTypeRef{Code: rt.Code, Name: rt.Name},
			Rates: map[domain.BagSize]*float64{
				domain.Bag40:  nil,
				domain.Bag75:  nil,
				domain.Bag100: nil,
			},
		}
		if row, ok := byCode[rt.Code]; ok {
			entry.Rates[domain.Bag40] = row.Rate40
			entry.Rates[domain.Bag75] = row.Rate75
			entry.Rates[domain.Bag100] = row.Rate100
		}
		items = append(items, entry)
	}
	return items, nil
}

// Save validates and persists a grouped write. Only the 100kg rate of each
// row is trusted; the dependent rates are recomputed from it before storage.
func (s *seasonRateService) Save(ctx context.Context, orgID, userID uuid.UUID, req wire.UpsertRequest) ([]domain.SeasonBagRate, error) {
	if !req.SeasonCode.Valid() {
		return nil, domain.ErrInvalidSeasonCode
	}
	if _, err := s.cropYearRepo.GetByStartYear(ctx, req.CropYearStartYear); err != nil {
		return nil, err
	}

	allTypes, err := s.riceTypeRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("seasonRate.Save: %w", err)
	}
	known := make(map[string]bool, len(allTypes))
	for _, rt := range allTypes {
		known[rt.Code] = true
	}

	rows := make([]domain.SeasonBagRateRow, 0, len(req.Rates))
	for _, rate := range req.Rates {
		if !known[rate.RiceTypeCode] {
			return nil, fmt.Errorf("rice type %s: %w", rate.RiceTypeCode, domain.ErrNotFound)
		}
		for size := range rate.Rates {
			if !size.Valid() {
				return nil, domain.ErrInvalidBagSize
			}
		}
		row := domain.SeasonBagRateRow{
			OrganizationID:    orgID,
			CropYearStartYear: req.CropYearStartYear,
			SeasonCode:        req.SeasonCode,
			RiceTypeCode:      rate.RiceTypeCode,
			UpdatedBy:         userID,
		}
		if base := rate.Rates[domain.Bag100]; base != nil {
			if *base < 0 {
				return nil, fmt.Errorf("rice type %s: %w", rate.RiceTypeCode, domain.ErrInvalidRate)
			}
			kg75, kg40 := ratecodec.DeriveRates(*base)
			b, r75, r40 := *base, kg75, kg40
			row.Rate100, row.Rate75, row.Rate40 = &b, &r75, &r40
		}
		rows = append(rows, row)
	}

	if err := s.rateRepo.Upsert(ctx, rows); err != nil {
		return nil, err
	}
	return s.List(ctx, orgID, req.CropYearStartYear, req.SeasonCode)
}

// SaveLegacy accepts the flat legacy write shape, folds it into the grouped
// form, and runs it through the same save path.
func (s *seasonRateService) SaveLegacy(ctx context.Context, orgID, userID uuid.UUID, req wire.LegacyUpsertRequest) ([]domain.SeasonBagRate, error) {
	byCode := make(map[string]*wire.RiceTypeRates)
	var order []string
	for _, rec := range req.Rates {
		if !rec.BagSize.Valid() {
			return nil, domain.ErrInvalidBagSize
		}
		row, ok := byCode[rec.RiceTypeCode]
		if !ok {
			row = &wire.RiceTypeRates{
				RiceTypeCode: rec.RiceTypeCode,
				Rates:        make(map[domain.BagSize]*float64, len(domain.BagSizes)),
			}
			byCode[rec.RiceTypeCode] = row
			order = append(order, rec.RiceTypeCode)
		}
		v := rec.RateRupees
		row.Rates[rec.BagSize] = &v
	}

	modern := wire.UpsertRequest{
		CropYearStartYear: req.CropYearStartYear,
		SeasonCode:        req.SeasonCode,
		Rates:             make([]wire.RiceTypeRates, 0, len(order)),
	}
	for _, code := range order {
		modern.Rates = append(modern.Rates, *byCode[code])
	}
	return s.Save(ctx, orgID, userID, modern)
}

// Reset zeroes every stored rate for the season, including rows belonging to
// deactivated rice types, after re-checking the confirmation token server
// side. Rows that do not exist yet for active rice types are created as
// zeros so the season comes back fully populated.
func (s *seasonRateService) Reset(ctx context.Context, orgID, userID uuid.UUID, input ResetInput) (*ResetResult, error) {
	if input.Confirm != domain.ResetConfirmToken {
		return nil, domain.ErrResetNotConfirmed
	}
	if !input.SeasonCode.Valid() {
		return nil, domain.ErrInvalidSeasonCode
	}
	year, err := s.cropYearRepo.GetByStartYear(ctx, input.CropYearStartYear)
	if err != nil {
		return nil, err
	}

	activeTypes, err := s.riceTypeRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("seasonRate.Reset: %w", err)
	}
	if len(activeTypes) == 0 {
		return nil, domain.ErrNoActiveRiceTypes
	}

	zero := 0.0
	rows := make([]domain.SeasonBagRateRow, 0, len(activeTypes))
	for _, rt := range activeTypes {
		z40, z75, z100 := zero, zero, zero
		rows = append(rows, domain.SeasonBagRateRow{
			OrganizationID:    orgID,
			CropYearStartYear: input.CropYearStartYear,
			SeasonCode:        input.SeasonCode,
			RiceTypeCode:      rt.Code,
			Rate40:            &z40,
			Rate75:            &z75,
			Rate100:           &z100,
			UpdatedBy:         userID,
		})
	}
	if err := s.rateRepo.Upsert(ctx, rows); err != nil {
		return nil, err
	}

	count, err := s.rateRepo.ZeroAll(ctx, orgID, input.CropYearStartYear, input.SeasonCode, userID)
	if err != nil {
		return nil, err
	}

	s.sendResetNotice(ctx, orgID, userID, year, input.SeasonCode, count)

	items, err := s.List(ctx, orgID, input.CropYearStartYear, input.SeasonCode)
	if err != nil {
		return nil, err
	}
	return &ResetResult{RowsZeroed: count, Items: items}, nil
}

// sendResetNotice emails the organization admin about the reset. The reset
// has already been committed, so delivery failures are logged, not returned.
func (s *seasonRateService) sendResetNotice(ctx context.Context, orgID, userID uuid.UUID, year *domain.CropYear, season domain.SeasonCode, count int) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		log.Printf("reset notice: loading organization %s: %v", orgID, err)
		return
	}
	performedBy := ""
	if user, err := s.userRepo.GetByID(ctx, orgID, userID); err == nil {
		performedBy = user.Email
	}

	notice := port.ResetNotice{
		OrgName:          org.Name,
		CropYearLabel:    year.Label,
		SeasonCode:       string(season),
		RowsZeroed:       count,
		PerformedByEmail: performedBy,
	}
	if err := s.email.SendRateResetNotice(ctx, org.AdminEmail, notice); err != nil {
		log.Printf("reset notice: sending to %s: %v", org.AdminEmail, err)
	}
}
