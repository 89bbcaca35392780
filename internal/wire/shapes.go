// Package wire defines the two season-bag-rate wire shapes the backend has
// shipped over time — the modern grouped-by-rice-type shape and the legacy
// flat list-by-bag-size shape — and reconciles both into the canonical
// in-memory form. Both parsers are independent and total: each either
// succeeds in full or fails, and the two shapes are never merged field by
// field.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"millgate/internal/domain"
)

// ErrMalformedResponse indicates that a payload parsed as neither the
// grouped nor the legacy shape.
var ErrMalformedResponse = errors.New("unexpected response from server")

// GroupedList is the modern list payload: one record per rice type.
type GroupedList struct {
	Items []domain.SeasonBagRate `json:"items"`
}

// LegacyRecord is one entry of the legacy flat list: a single bag size's
// rate for one rice type.
type LegacyRecord struct {
	CropYearStartYear int               `json:"cropYearStartYear"`
	SeasonCode        domain.SeasonCode `json:"seasonCode"`
	RiceTypeCode      string            `json:"riceTypeCode"`
	RiceTypeName      string            `json:"riceTypeName"`
	BagSize           domain.BagSize    `json:"bagSize"`
	RateRupees        *float64          `json:"rateRupees"`
}

// LegacyList is the legacy list payload.
type LegacyList struct {
	Items []LegacyRecord `json:"items"`
}

// RiceTypeRates is one row of the modern upsert request.
type RiceTypeRates struct {
	RiceTypeCode string                      `json:"riceTypeCode"`
	Rates        map[domain.BagSize]*float64 `json:"rates"`
}

// UpsertRequest is the modern grouped write payload.
type UpsertRequest struct {
	CropYearStartYear int               `json:"cropYearStartYear"`
	SeasonCode        domain.SeasonCode `json:"seasonCode"`
	Rates             []RiceTypeRates   `json:"rates"`
}

// LegacyUpsertRecord is one flat record of the legacy write payload.
type LegacyUpsertRecord struct {
	RiceTypeCode string         `json:"riceTypeCode"`
	BagSize      domain.BagSize `json:"bagSize"`
	RateRupees   float64        `json:"rateRupees"`
}

// LegacyUpsertRequest is the legacy flat write payload, used only as the
// one-shot fallback when a modern write is rejected with HTTP 400.
type LegacyUpsertRequest struct {
	CropYearStartYear int                  `json:"cropYearStartYear"`
	SeasonCode        domain.SeasonCode    `json:"seasonCode"`
	Rates             []LegacyUpsertRecord `json:"rates"`
}

// NormalizeList reconciles a list payload of either wire shape into
// canonical entries. The grouped shape is attempted first; on failure the
// payload is re-parsed as the legacy flat shape and folded into grouped
// entries keyed by rice-type code, with all three bag sizes initialized to
// null before the flat values are filled in. If neither parse succeeds the
// result is ErrMalformedResponse.
func NormalizeList(raw json.RawMessage) ([]domain.SeasonBagRate, error) {
	if items, err := parseGrouped(raw); err == nil {
		return items, nil
	}
	items, err := parseLegacy(raw)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func parseGrouped(raw json.RawMessage) ([]domain.SeasonBagRate, error) {
	var list GroupedList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	seen := make(map[string]bool, len(list.Items))
	items := make([]domain.SeasonBagRate, 0, len(list.Items))
	for _, item := range list.Items {
		if item.RiceType.Code == "" || !item.SeasonCode.Valid() || item.Rates == nil {
			return nil, fmt.Errorf("%w: not a grouped list", ErrMalformedResponse)
		}
		for size := range item.Rates {
			if !size.Valid() {
				return nil, fmt.Errorf("%w: unknown bag size %q", ErrMalformedResponse, size)
			}
		}
		key := fmt.Sprintf("%d/%s", item.CropYearStartYear, item.Key())
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate entry for %s", ErrMalformedResponse, item.RiceType.Code)
		}
		seen[key] = true
		items = append(items, canonical(item))
	}
	return items, nil
}

func parseLegacy(raw json.RawMessage) ([]domain.SeasonBagRate, error) {
	var list LegacyList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	byCode := make(map[string]*domain.SeasonBagRate)
	var order []string
	for _, rec := range list.Items {
		if rec.RiceTypeCode == "" || !rec.SeasonCode.Valid() || !rec.BagSize.Valid() || rec.RateRupees == nil {
			return nil, fmt.Errorf("%w: not a legacy list", ErrMalformedResponse)
		}
		entry, ok := byCode[rec.RiceTypeCode]
		if !ok {
			entry = &domain.SeasonBagRate{
				CropYearStartYear: rec.CropYearStartYear,
				SeasonCode:        rec.SeasonCode,
				RiceType:          domain.RiceTypeRef{Code: rec.RiceTypeCode, Name: rec.RiceTypeName},
				Rates:             emptyRates(),
			}
			byCode[rec.RiceTypeCode] = entry
			order = append(order, rec.RiceTypeCode)
		}
		v := *rec.RateRupees
		entry.Rates[rec.BagSize] = &v
	}
	items := make([]domain.SeasonBagRate, 0, len(order))
	for _, code := range order {
		items = append(items, *byCode[code])
	}
	return items, nil
}

// ToLegacyUpsertPayload expands each grouped rice-type row into three flat
// records, one per bag size, preserving the crop year and season.
func ToLegacyUpsertPayload(modern UpsertRequest) LegacyUpsertRequest {
	legacy := LegacyUpsertRequest{
		CropYearStartYear: modern.CropYearStartYear,
		SeasonCode:        modern.SeasonCode,
		Rates:             make([]LegacyUpsertRecord, 0, len(modern.Rates)*len(domain.BagSizes)),
	}
	for _, row := range modern.Rates {
		for _, size := range domain.BagSizes {
			var rupees float64
			if v := row.Rates[size]; v != nil {
				rupees = *v
			}
			legacy.Rates = append(legacy.Rates, LegacyUpsertRecord{
				RiceTypeCode: row.RiceTypeCode,
				BagSize:      size,
				RateRupees:   rupees,
			})
		}
	}
	return legacy
}

// canonical fills in any bag sizes missing from a grouped entry's rate map
// so every normalized entry carries all three keys.
func canonical(item domain.SeasonBagRate) domain.SeasonBagRate {
	rates := emptyRates()
	for size, v := range item.Rates {
		rates[size] = v
	}
	item.Rates = rates
	return item
}

func emptyRates() map[domain.BagSize]*float64 {
	rates := make(map[domain.BagSize]*float64, len(domain.BagSizes))
	for _, size := range domain.BagSizes {
		rates[size] = nil
	}
	return rates
}
