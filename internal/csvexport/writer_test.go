package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millgate/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "2024-25", domain.SeasonKharif)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 7)
	assert.Equal(t, "Crop Year", row[0])
	assert.Equal(t, "40kg", row[4])
	assert.Equal(t, "100kg", row[6])
}

func TestWriteEntries(t *testing.T) {
	entries := []domain.SeasonBagRate{
		{
			RiceType: domain.RiceTypeRef{Code: "SONA", Name: "Sona Masoori"},
			Rates: map[domain.BagSize]*float64{
				domain.Bag40:  ptr(1060.13),
				domain.Bag75:  ptr(1987.74),
				domain.Bag100: ptr(2650.33),
			},
		},
		{
			RiceType: domain.RiceTypeRef{Code: "HMT", Name: "HMT"},
			Rates: map[domain.BagSize]*float64{
				domain.Bag40:  nil,
				domain.Bag75:  nil,
				domain.Bag100: nil,
			},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, "2024-25", domain.SeasonKharif)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteEntries(entries))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"2024-25", "KHARIF", "SONA", "Sona Masoori", "1060.13", "1987.74", "2650.33"}, rows[1])
	// Unentered rates are blank cells, not zeros.
	assert.Equal(t, []string{"2024-25", "KHARIF", "HMT", "HMT", "", "", ""}, rows[2])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "2024-25_KHARIF", SanitizeFilename("2024-25 KHARIF"))
	assert.Equal(t, "a_b", SanitizeFilename("a//??b"))
	assert.Equal(t, "trimmed", SanitizeFilename("__trimmed__"))
}
