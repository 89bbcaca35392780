package console

import (
	"millgate/internal/domain"
	"millgate/internal/ratecodec"
)

// Cells holds the three display strings for one rice-type row, keyed by bag
// size. Cell values are strings so an operator's in-progress input (for
// example a trailing decimal point) survives verbatim in the 100kg cell.
type Cells map[domain.BagSize]string

// Row is one editable line of the pricing grid.
type Row struct {
	RiceTypeCode string
	RiceTypeName string
	Cells        Cells
}

// Matrix is the editable grid of (rice type × bag size) rate strings for one
// crop year and season selection, together with a snapshot of the last
// state the server confirmed. The snapshot is replaced only on successful
// load, save, or reset — never speculatively.
type Matrix struct {
	rows     []Row
	snapshot map[string]Cells
}

// SeedMatrix builds a fresh matrix with one row per active rice type, in
// the given order. Loaded entries for codes not in the active list are
// dropped; cells default to empty strings and are filled from any non-null
// loaded value, truncated to two decimals for display. The result starts
// clean: its snapshot is the seeded grid itself.
func SeedMatrix(activeTypes []domain.RiceType, entries []domain.SeasonBagRate) *Matrix {
	byCode := make(map[string]domain.SeasonBagRate, len(entries))
	for _, e := range entries {
		byCode[e.RiceType.Code] = e
	}

	m := &Matrix{snapshot: make(map[string]Cells, len(activeTypes))}
	for _, rt := range activeTypes {
		cells := Cells{domain.Bag40: "", domain.Bag75: "", domain.Bag100: ""}
		if entry, ok := byCode[rt.Code]; ok {
			for _, size := range domain.BagSizes {
				if v := entry.Rates[size]; v != nil {
					cells[size] = ratecodec.TruncateTwoDecimals(*v)
				}
			}
		}
		m.rows = append(m.rows, Row{RiceTypeCode: rt.Code, RiceTypeName: rt.Name, Cells: cells})
		m.snapshot[rt.Code] = cells.clone()
	}
	return m
}

// Rows returns the grid rows in display order.
func (m *Matrix) Rows() []Row {
	return m.rows
}

// Cell returns the display string for one cell; empty for unknown codes.
func (m *Matrix) Cell(code string, size domain.BagSize) string {
	for _, row := range m.rows {
		if row.RiceTypeCode == code {
			return row.Cells[size]
		}
	}
	return ""
}

// EditBase records an edit of a row's 100kg cell. The raw value is stored
// verbatim; a parseable value re-derives the 75kg and 40kg cells while an
// empty or invalid one clears them, so stale derived values never sit next
// to an invalid base.
func (m *Matrix) EditBase(code, raw string) {
	for i := range m.rows {
		if m.rows[i].RiceTypeCode != code {
			continue
		}
		cells := m.rows[i].Cells
		cells[domain.Bag100] = raw
		if base := ratecodec.ParseDecimalOrNull(raw); base != nil {
			derived := ratecodec.DeriveFromBase(*base)
			cells[domain.Bag75] = derived.KG75
			cells[domain.Bag40] = derived.KG40
		} else {
			cells[domain.Bag75] = ""
			cells[domain.Bag40] = ""
		}
		return
	}
}

// Dirty reports whether any cell differs, string for string, from the last
// confirmed snapshot.
func (m *Matrix) Dirty() bool {
	for _, row := range m.rows {
		saved, ok := m.snapshot[row.RiceTypeCode]
		if !ok {
			return true
		}
		for _, size := range domain.BagSizes {
			if row.Cells[size] != saved[size] {
				return true
			}
		}
	}
	return false
}

// Reconcile replaces the grid and its snapshot with the server's
// authoritative entries, keeping the current row order. Used after a
// successful save or reset; the server is trusted over the locally
// submitted values.
func (m *Matrix) Reconcile(entries []domain.SeasonBagRate) {
	byCode := make(map[string]domain.SeasonBagRate, len(entries))
	for _, e := range entries {
		byCode[e.RiceType.Code] = e
	}
	for i := range m.rows {
		cells := Cells{domain.Bag40: "", domain.Bag75: "", domain.Bag100: ""}
		if entry, ok := byCode[m.rows[i].RiceTypeCode]; ok {
			for _, size := range domain.BagSizes {
				if v := entry.Rates[size]; v != nil {
					cells[size] = ratecodec.TruncateTwoDecimals(*v)
				}
			}
		}
		m.rows[i].Cells = cells
		m.snapshot[m.rows[i].RiceTypeCode] = cells.clone()
	}
}

func (c Cells) clone() Cells {
	out := make(Cells, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
