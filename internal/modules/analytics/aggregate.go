package analytics

import (
	"math"
	"sort"

	"github.com/correlio/correlio/pkg/formulas"
)

// MinOverlapYears is the minimum number of overlapping yearly
// observations required for a defined correlation cell.
const MinOverlapYears = 2

// WideTable is a year-indexed, asset-keyed sparse view of yearly
// returns. A (year, asset) pair absent from the input is undefined,
// not zero.
type WideTable struct {
	Years  []int // ascending
	Assets []string
	cells  map[int]map[string]float64
}

// Wide reshapes yearly returns into a WideTable. The asset axis follows
// the caller-supplied order, restricted to assets that actually have at
// least one yearly return.
func Wide(yearly []YearlyReturn, order []string) *WideTable {
	cells := make(map[int]map[string]float64)
	present := make(map[string]bool)
	yearSet := make(map[int]bool)

	for _, y := range yearly {
		row, ok := cells[y.Year]
		if !ok {
			row = make(map[string]float64)
			cells[y.Year] = row
		}
		row[y.Asset] = y.Return
		present[y.Asset] = true
		yearSet[y.Year] = true
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	assets := make([]string, 0, len(order))
	for _, a := range order {
		if present[a] {
			assets = append(assets, a)
		}
	}

	return &WideTable{Years: years, Assets: assets, cells: cells}
}

// Value returns the yearly return of an asset in a year, if defined.
func (w *WideTable) Value(year int, asset string) (float64, bool) {
	v, ok := w.cells[year][asset]
	return v, ok
}

// OverlapCounts counts, for every asset pair (including an asset with
// itself), the years where both have a defined yearly return. Computed
// as the inner product of presence indicators over years, so the result
// is symmetric by construction.
func (w *WideTable) OverlapCounts() map[string]map[string]int {
	out := make(map[string]map[string]int, len(w.Assets))
	for _, a := range w.Assets {
		out[a] = make(map[string]int, len(w.Assets))
	}

	for i, a := range w.Assets {
		for j := i; j < len(w.Assets); j++ {
			b := w.Assets[j]
			count := 0
			for _, year := range w.Years {
				if _, okA := w.Value(year, a); okA {
					if _, okB := w.Value(year, b); okB {
						count++
					}
				}
			}
			out[a][b] = count
			out[b][a] = count
		}
	}

	return out
}

// Pearson computes the pairwise-complete sample correlation matrix.
// A cell is nil when fewer than minOverlap years overlap or when either
// series has zero variance over the overlap. The diagonal is 1 whenever
// the asset has at least minOverlap observations. Defined values are
// rounded to 6 decimals.
func (w *WideTable) Pearson(minOverlap int) map[string]map[string]*float64 {
	out := make(map[string]map[string]*float64, len(w.Assets))
	for _, a := range w.Assets {
		out[a] = make(map[string]*float64, len(w.Assets))
	}

	for i, a := range w.Assets {
		for j := i; j < len(w.Assets); j++ {
			b := w.Assets[j]

			var xs, ys []float64
			for _, year := range w.Years {
				va, okA := w.Value(year, a)
				vb, okB := w.Value(year, b)
				if okA && okB {
					xs = append(xs, va)
					ys = append(ys, vb)
				}
			}

			var cell *float64
			if len(xs) >= minOverlap {
				var r float64
				if a == b {
					r = 1.0
				} else {
					r = formulas.Correlation(xs, ys)
				}
				if !math.IsNaN(r) {
					rounded := round6(r)
					cell = &rounded
				}
			}

			out[a][b] = cell
			out[b][a] = cell
		}
	}

	return out
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
