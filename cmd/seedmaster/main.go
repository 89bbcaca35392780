// Command seedmaster converts a rice-type master Excel file into a SQL seed
// file. The workbook is expected to have a RiceTypes sheet (code, name) and
// an optional Varieties sheet (rice type code, variety name).
// Usage: go run ./cmd/seedmaster <workbook.xlsx>
// Output: db/seeds/master_data.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

type riceTypeEntry struct {
	code string
	name string
}

type varietyEntry struct {
	typeCode string
	name     string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedmaster <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/master_data.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	types, err := parseRiceTypeSheet(f)
	if err != nil {
		return fmt.Errorf("parse rice type sheet: %w", err)
	}
	log.Printf("rice types: %d entries", len(types))

	varieties, err := parseVarietySheet(f, types)
	if err != nil {
		return fmt.Errorf("parse variety sheet: %w", err)
	}
	log.Printf("varieties: %d entries", len(varieties))

	if err := os.MkdirAll("db/seeds", 0o755); err != nil {
		return fmt.Errorf("create seeds dir: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSeed(out, types, varieties); err != nil {
		return err
	}

	log.Printf("Generated %d rice types and %d varieties in %s", len(types), len(varieties), outPath)
	return nil
}

// parseRiceTypeSheet reads the first sheet. Columns: A=code, B=name.
// Data starts at row index 1, below the header.
func parseRiceTypeSheet(f *excelize.File) ([]riceTypeEntry, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []riceTypeEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		if code == "" || name == "" || seen[code] {
			continue
		}
		seen[code] = true
		entries = append(entries, riceTypeEntry{code: code, name: name})
	}
	return entries, nil
}

// parseVarietySheet reads the second sheet if present. Columns: A=rice type
// code, B=variety name. Rows referencing unknown type codes are skipped.
func parseVarietySheet(f *excelize.File, types []riceTypeEntry) ([]varietyEntry, error) {
	if f.SheetCount < 2 {
		return nil, nil
	}
	rows, err := f.GetRows(f.GetSheetName(1))
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(types))
	for _, t := range types {
		known[t.code] = true
	}

	var entries []varietyEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		if name == "" || !known[code] {
			continue
		}
		entries = append(entries, varietyEntry{typeCode: code, name: name})
	}
	return entries, nil
}

func writeSeed(out *os.File, types []riceTypeEntry, varieties []varietyEntry) error {
	w := func(format string, args ...interface{}) error {
		_, werr := fmt.Fprintf(out, format+"\n", args...)
		return werr
	}

	if err := w("-- Rice type and variety seed data generated from Excel."); err != nil {
		return err
	}
	if err := w("BEGIN;"); err != nil {
		return err
	}

	for _, t := range types {
		if err := w(
			"INSERT INTO rice_types (id, code, name, is_active) VALUES (gen_random_uuid(), '%s', '%s', TRUE) ON CONFLICT (code) DO NOTHING;",
			sqlEscape(t.code), sqlEscape(t.name)); err != nil {
			return err
		}
	}
	for _, v := range varieties {
		if err := w(
			"INSERT INTO rice_varieties (id, rice_type_id, name, is_active) SELECT gen_random_uuid(), id, '%s', TRUE FROM rice_types WHERE code = '%s';",
			sqlEscape(v.name), sqlEscape(v.typeCode)); err != nil {
			return err
		}
	}

	return w("COMMIT;")
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
