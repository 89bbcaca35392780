// Package csvexport renders the season bag-rate matrix as CSV, the
// lightweight alternative to the xlsx download for mills that feed the
// numbers into their own spreadsheets.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"millgate/internal/domain"
	"millgate/internal/ratecodec"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row: crop year and season identify the
// matrix, then one column per bag size in weight order.
func columns() []string {
	cols := []string{"Crop Year", "Season", "Rice Type Code", "Rice Type Name"}
	for _, size := range domain.BagSizes {
		cols = append(cols, size.Label())
	}
	return cols
}

// Writer wraps csv.Writer for exporting a season's rate matrix as CSV.
type Writer struct {
	csv           *csv.Writer
	cropYearLabel string
	seasonCode    domain.SeasonCode
}

// NewWriter creates a Writer that writes CSV rows for one season to w.
func NewWriter(w io.Writer, cropYearLabel string, season domain.SeasonCode) *Writer {
	return &Writer{csv: csv.NewWriter(w), cropYearLabel: cropYearLabel, seasonCode: season}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns())
}

// WriteEntries converts grouped rate entries to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []domain.SeasonBagRate) error {
	for i := range entries {
		if err := w.csv.Write(w.entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// entryToRow converts one rice type's rates to a row. Rates not yet
// entered stay as empty cells rather than zeros.
func (w *Writer) entryToRow(entry *domain.SeasonBagRate) []string {
	row := []string{w.cropYearLabel, string(w.seasonCode), entry.RiceType.Code, entry.RiceType.Name}
	for _, size := range domain.BagSizes {
		if v := entry.Rates[size]; v != nil {
			row = append(row, ratecodec.TruncateTwoDecimals(*v))
		} else {
			row = append(row, "")
		}
	}
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: season-bag-rates_{label}_{season}_{YYYY-MM-DD}.csv
func BuildFilename(cropYearLabel string, season domain.SeasonCode) string {
	sanitized := SanitizeFilename(cropYearLabel + "_" + string(season))
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("season-bag-rates_%s_%s.csv", sanitized, date)
}
