package ratecodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTwoDecimals_TruncatesNotRounds(t *testing.T) {
	assert.Equal(t, "1.99", TruncateTwoDecimals(1.999))
	assert.Equal(t, "2650.33", TruncateTwoDecimals(2650.33))
	assert.Equal(t, "0.00", TruncateTwoDecimals(0.009))
	assert.Equal(t, "100.00", TruncateTwoDecimals(100))
}

func TestTruncateTwoDecimals_NonFinite(t *testing.T) {
	assert.Equal(t, "0.00", TruncateTwoDecimals(math.NaN()))
	assert.Equal(t, "0.00", TruncateTwoDecimals(math.Inf(1)))
	assert.Equal(t, "0.00", TruncateTwoDecimals(math.Inf(-1)))
}

func TestTruncateTwoDecimals_Negative(t *testing.T) {
	// Truncation is toward zero for negative amounts as well.
	assert.Equal(t, "-1.99", TruncateTwoDecimals(-1.999))
}

func TestDeriveFromBase(t *testing.T) {
	// 2650.33 * 0.75 = 1987.7475, which truncates down to 1987.74.
	d := DeriveFromBase(2650.33)
	assert.Equal(t, "1987.74", d.KG75)
	assert.Equal(t, "1060.13", d.KG40)

	d = DeriveFromBase(1000)
	assert.Equal(t, "750.00", d.KG75)
	assert.Equal(t, "400.00", d.KG40)

	d = DeriveFromBase(0)
	assert.Equal(t, "0.00", d.KG75)
	assert.Equal(t, "0.00", d.KG40)
}

func TestDeriveFromBase_FloatProductBoundaries(t *testing.T) {
	// The share is taken as the float product, so bases whose product lands
	// one ulp below a hundredth boundary truncate down: 0.60 * 0.75 is
	// 0.44999999999999996 in float64, not 0.45.
	d := DeriveFromBase(0.60)
	assert.Equal(t, "0.44", d.KG75)

	d = DeriveFromBase(1.40)
	assert.Equal(t, "1.04", d.KG75)
}

func TestDeriveFromBase_MatchesTruncation(t *testing.T) {
	// Derivation must agree with truncating the raw product for every
	// two-decimal base in [0, 10000].
	for i := 0; i <= 1000000; i++ {
		base := float64(i) / 100
		d := DeriveFromBase(base)
		if d.KG75 != TruncateTwoDecimals(base*0.75) {
			t.Fatalf("base %.2f: KG_75 %s != truncated product %s", base, d.KG75, TruncateTwoDecimals(base*0.75))
		}
		if d.KG40 != TruncateTwoDecimals(base*0.40) {
			t.Fatalf("base %.2f: KG_40 %s != truncated product %s", base, d.KG40, TruncateTwoDecimals(base*0.40))
		}
	}
}

func TestDeriveRates(t *testing.T) {
	kg75, kg40 := DeriveRates(2650.33)
	assert.Equal(t, 1987.74, kg75)
	assert.Equal(t, 1060.13, kg40)

	// Stored numeric forms follow the same float-product truncation as the
	// display strings.
	kg75, kg40 = DeriveRates(0.60)
	assert.Equal(t, 0.44, kg75)
	assert.Equal(t, 0.24, kg40)
}

func TestParseDecimalOrNull(t *testing.T) {
	v := ParseDecimalOrNull("  2650.33 ")
	if assert.NotNil(t, v) {
		assert.Equal(t, 2650.33, *v)
	}

	v = ParseDecimalOrNull("-12.5")
	if assert.NotNil(t, v) {
		assert.Equal(t, -12.5, *v)
	}

	assert.Nil(t, ParseDecimalOrNull(""))
	assert.Nil(t, ParseDecimalOrNull("   "))
	assert.Nil(t, ParseDecimalOrNull("abc"))
	assert.Nil(t, ParseDecimalOrNull("12.3.4"))
	assert.Nil(t, ParseDecimalOrNull("NaN"))
	assert.Nil(t, ParseDecimalOrNull("Inf"))
}
