package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/correlio/correlio/pkg/formulas"
)

// RollingCorrelation computes a fixed-window Pearson correlation between
// two assets' monthly returns, sampled at each year's last window-ending
// value.
//
// The two series are aligned by date: only dates where both assets have
// a defined monthly return participate. Each emitted value uses exactly
// windowMonths consecutive aligned observations; no partial windows are
// produced at the start, and zero-variance windows are skipped. The
// result is nil when no window ever completes.
func RollingCorrelation(monthly []MonthlyReturn, assetA, assetB string, windowMonths int) []RollingPoint {
	if windowMonths < 1 {
		return nil
	}

	type pair struct {
		a, b *float64
	}
	byDate := make(map[time.Time]*pair)

	for i := range monthly {
		m := &monthly[i]
		if m.Return == nil || (m.Asset != assetA && m.Asset != assetB) {
			continue
		}

		p, ok := byDate[m.Date]
		if !ok {
			p = &pair{}
			byDate[m.Date] = p
		}
		// Duplicate observations on the same date: the last one wins.
		if m.Asset == assetA {
			p.a = m.Return
		}
		if m.Asset == assetB {
			p.b = m.Return
		}
	}

	var dates []time.Time
	for d, p := range byDate {
		if p.a != nil && p.b != nil {
			dates = append(dates, d)
		}
	}
	if len(dates) < windowMonths {
		return nil
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	xs := make([]float64, len(dates))
	ys := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = *byDate[d].a
		ys[i] = *byDate[d].b
	}

	// Last defined window-ending value per calendar year, in year order.
	lastOfYear := make(map[int]float64)
	var years []int

	for end := windowMonths - 1; end < len(dates); end++ {
		r := formulas.Correlation(xs[end-windowMonths+1:end+1], ys[end-windowMonths+1:end+1])
		if math.IsNaN(r) {
			continue
		}

		year := dates[end].Year()
		if _, seen := lastOfYear[year]; !seen {
			years = append(years, year)
		}
		lastOfYear[year] = r
	}

	if len(years) == 0 {
		return nil
	}

	points := make([]RollingPoint, 0, len(years))
	for _, y := range years {
		points = append(points, RollingPoint{Year: y, Value: lastOfYear[y]})
	}
	return points
}

// FilterRollingYears keeps only the points inside [start, end]
// inclusive, returning nil when nothing remains.
func FilterRollingYears(points []RollingPoint, start, end int) []RollingPoint {
	var out []RollingPoint
	for _, p := range points {
		if p.Year >= start && p.Year <= end {
			out = append(out, p)
		}
	}
	return out
}
