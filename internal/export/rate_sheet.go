// Package export renders season bag-rate matrices as downloadable
// spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"millgate/internal/domain"
	"millgate/internal/ratecodec"
)

const rateSheetName = "Season Bag Rates"

// RateSheet renders one season's pricing matrix as an xlsx workbook: one row
// per rice type, one column per bag size, rates printed with two decimals and
// empty cells for rates not yet entered.
func RateSheet(cropYearLabel string, season domain.SeasonCode, entries []domain.SeasonBagRate) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(rateSheetName)
	if err != nil {
		return nil, fmt.Errorf("export.RateSheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export.RateSheet: %w", err)
	}

	headers := []string{"Crop Year", "Season", "Rice Type Code", "Rice Type Name"}
	for _, size := range domain.BagSizes {
		headers = append(headers, size.Label()+" (₹)")
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.RateSheet: %w", err)
		}
		if err := f.SetCellValue(rateSheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export.RateSheet: %w", err)
		}
	}

	for i, entry := range entries {
		values := []interface{}{cropYearLabel, string(season), entry.RiceType.Code, entry.RiceType.Name}
		for _, size := range domain.BagSizes {
			if v := entry.Rates[size]; v != nil {
				values = append(values, ratecodec.TruncateTwoDecimals(*v))
			} else {
				values = append(values, "")
			}
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export.RateSheet: %w", err)
			}
			if err := f.SetCellValue(rateSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export.RateSheet: %w", err)
			}
		}
	}

	if err := f.SetColWidth(rateSheetName, "A", "G", 18); err != nil {
		return nil, fmt.Errorf("export.RateSheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.RateSheet: %w", err)
	}
	return buf.Bytes(), nil
}
