package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alignedMonthly builds monthly returns for two assets over consecutive
// month ends starting January of startYear.
func alignedMonthly(startYear int, a, b []float64) []MonthlyReturn {
	if len(a) != len(b) {
		panic(fmt.Sprintf("series length mismatch: %d vs %d", len(a), len(b)))
	}

	var out []MonthlyReturn
	for i := range a {
		d := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, i+1, -1) // end of month i
		out = append(out,
			MonthlyReturn{Asset: "A", Date: d, Year: d.Year(), Return: fp(a[i])},
			MonthlyReturn{Asset: "B", Date: d, Year: d.Year(), Return: fp(b[i])},
		)
	}
	return out
}

func TestRollingCorrelation_PerfectlyCorrelated(t *testing.T) {
	monthly := alignedMonthly(2020,
		[]float64{0.01, 0.02, 0.03, 0.04, 0.05},
		[]float64{0.02, 0.04, 0.06, 0.08, 0.10},
	)

	points := RollingCorrelation(monthly, "A", "B", 3)
	require.Len(t, points, 1)
	assert.Equal(t, 2020, points[0].Year)
	assert.InDelta(t, 1.0, points[0].Value, 1e-9)
}

func TestRollingCorrelation_YearEndSampling(t *testing.T) {
	// 24 months over 2019-2020: one point per year, each the last
	// fully-windowed value of that year
	a := make([]float64, 24)
	b := make([]float64, 24)
	for i := range a {
		a[i] = float64(i%5)*0.01 + 0.001
		b[i] = float64((i*3)%7)*0.01 - 0.002
	}

	monthly := alignedMonthly(2019, a, b)
	points := RollingCorrelation(monthly, "A", "B", 6)

	require.Len(t, points, 2)
	assert.Equal(t, 2019, points[0].Year)
	assert.Equal(t, 2020, points[1].Year)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.Value, -1.0-1e-9)
		assert.LessOrEqual(t, p.Value, 1.0+1e-9)
	}
}

func TestRollingCorrelation_NoPartialWindows(t *testing.T) {
	// 4 aligned observations, window of 5: no value is ever produced
	monthly := alignedMonthly(2020,
		[]float64{0.01, 0.02, 0.03, 0.04},
		[]float64{0.04, 0.03, 0.02, 0.01},
	)

	assert.Nil(t, RollingCorrelation(monthly, "A", "B", 5))
}

func TestRollingCorrelation_DropsUnalignedDates(t *testing.T) {
	monthly := alignedMonthly(2020,
		[]float64{0.01, 0.02, 0.03},
		[]float64{0.03, 0.01, 0.02},
	)
	// Extra observation for A only; must not contribute to any window
	monthly = append(monthly, MonthlyReturn{
		Asset: "A", Date: date("2020-04-30"), Year: 2020, Return: fp(0.50),
	})
	// Undefined return rows are ignored entirely
	monthly = append(monthly, MonthlyReturn{
		Asset: "B", Date: date("2020-05-31"), Year: 2020, Return: nil,
	})

	points := RollingCorrelation(monthly, "A", "B", 3)
	require.Len(t, points, 1)

	// Same result as without the stray rows
	expected := RollingCorrelation(monthly[:6], "A", "B", 3)
	assert.InDelta(t, expected[0].Value, points[0].Value, 1e-12)
}

func TestRollingCorrelation_SkipsZeroVarianceWindows(t *testing.T) {
	// A is constant for the first 4 months, so the first two 3-month
	// windows are undefined; a later window with variance still emits
	monthly := alignedMonthly(2020,
		[]float64{0.01, 0.01, 0.01, 0.01, 0.05, 0.02},
		[]float64{0.02, 0.03, 0.01, 0.04, 0.02, 0.05},
	)

	points := RollingCorrelation(monthly, "A", "B", 3)
	require.Len(t, points, 1)
	assert.Equal(t, 2020, points[0].Year)
}

func TestRollingCorrelation_SeriesShorterThanWindow(t *testing.T) {
	assert.Nil(t, RollingCorrelation(nil, "A", "B", 3))

	monthly := alignedMonthly(2020, []float64{0.01}, []float64{0.02})
	assert.Nil(t, RollingCorrelation(monthly, "A", "B", 2))
}

func TestFilterRollingYears(t *testing.T) {
	points := []RollingPoint{
		{Year: 2018, Value: 0.1},
		{Year: 2019, Value: 0.2},
		{Year: 2020, Value: 0.3},
	}

	kept := FilterRollingYears(points, 2019, 2020)
	require.Len(t, kept, 2)
	assert.Equal(t, 2019, kept[0].Year)

	// Nothing in range: nil, not an empty list
	assert.Nil(t, FilterRollingYears(points, 2021, 2022))
}
