package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"millgate/internal/domain"
	"millgate/internal/port"
)

// VillageImportRowError describes one rejected CSV row. Line numbers are
// 1-based and include the header.
type VillageImportRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// VillageImportResult summarizes a bulk upload.
type VillageImportResult struct {
	Created    int                     `json:"created"`
	Skipped    int                     `json:"skipped"`
	RowErrors  []VillageImportRowError `json:"row_errors"`
	ArchiveKey string                  `json:"archive_key"`
	ArchivedAt time.Time               `json:"archived_at"`
}

// VillageImportService ingests village CSV files. Expected columns:
// mandal_id, name, is_procurement_center. Rows that fail validation are
// reported individually; valid rows are still created.
type VillageImportService interface {
	Import(ctx context.Context, orgID uuid.UUID, filename string, file io.Reader) (*VillageImportResult, error)
}

type villageImportService struct {
	locationRepo port.LocationRepository
	storage      port.ObjectStorage
	bucket       string
}

// NewVillageImportService creates a new VillageImportService implementation.
func NewVillageImportService(locationRepo port.LocationRepository, storage port.ObjectStorage, bucket string) VillageImportService {
	return &villageImportService{locationRepo: locationRepo, storage: storage, bucket: bucket}
}

func (s *villageImportService) Import(ctx context.Context, orgID uuid.UUID, filename string, file io.Reader) (*VillageImportResult, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("villageImport.Import read: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("villageImport.Import parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("villageImport.Import: empty file")
	}

	result := &VillageImportResult{}

	// Mandals are looked up once per distinct ID; the same cache also
	// serves as the validity check for repeated rows.
	mandals := make(map[string]*domain.Location)

	var toCreate []domain.Location
	for i, record := range records[1:] {
		line := i + 2
		if len(record) < 2 {
			result.rejectRow(line, "expected at least mandal_id and name columns")
			continue
		}

		mandalRaw := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		if name == "" {
			result.rejectRow(line, "village name is empty")
			continue
		}

		mandal, ok := mandals[mandalRaw]
		if !ok {
			mandalID, err := uuid.Parse(mandalRaw)
			if err != nil {
				result.rejectRow(line, fmt.Sprintf("invalid mandal id %q", mandalRaw))
				mandals[mandalRaw] = nil
				continue
			}
			mandal, err = s.locationRepo.GetByID(ctx, mandalID)
			if err != nil || mandal.Level != domain.LevelMandal {
				result.rejectRow(line, fmt.Sprintf("mandal %q not found", mandalRaw))
				mandals[mandalRaw] = nil
				continue
			}
			mandals[mandalRaw] = mandal
		}
		if mandal == nil {
			result.rejectRow(line, fmt.Sprintf("mandal %q not found", mandalRaw))
			continue
		}

		isCenter := false
		if len(record) >= 3 {
			switch strings.ToLower(strings.TrimSpace(record[2])) {
			case "", "false", "no", "0":
			case "true", "yes", "1":
				isCenter = true
			default:
				result.rejectRow(line, fmt.Sprintf("invalid is_procurement_center value %q", record[2]))
				continue
			}
		}

		parentID := mandal.ID
		toCreate = append(toCreate, domain.Location{
			Level:               domain.LevelVillage,
			ParentID:            &parentID,
			Name:                name,
			IsProcurementCenter: isCenter,
		})
	}

	if len(toCreate) > 0 {
		if err := s.locationRepo.CreateBatch(ctx, toCreate); err != nil {
			return nil, fmt.Errorf("villageImport.Import create: %w", err)
		}
		result.Created = len(toCreate)
	}

	result.ArchivedAt = time.Now().UTC()
	result.ArchiveKey = fmt.Sprintf("village-uploads/%s/%s_%s",
		orgID, result.ArchivedAt.Format("20060102T150405Z"), filename)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         result.ArchiveKey,
		Body:        bytes.NewReader(raw),
		ContentType: "text/csv",
		Size:        int64(len(raw)),
	})
	if err != nil {
		return nil, fmt.Errorf("villageImport.Import archive: %w", err)
	}

	return result, nil
}

func (r *VillageImportResult) rejectRow(line int, reason string) {
	r.Skipped++
	r.RowErrors = append(r.RowErrors, VillageImportRowError{Line: line, Reason: reason})
}
