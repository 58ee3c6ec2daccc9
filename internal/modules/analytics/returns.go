package analytics

import (
	"github.com/correlio/correlio/internal/modules/prices"
)

// MonthlyReturns derives per-observation returns from a cleaned price
// table. The table must already be sorted by (asset, date); each return
// is price[i]/price[i-1] - 1 against the previous observation of the
// same asset, and the first observation per asset has a nil return.
func MonthlyReturns(points []prices.PricePoint) []MonthlyReturn {
	returns := make([]MonthlyReturn, 0, len(points))

	prevAsset := ""
	prevPrice := 0.0

	for _, p := range points {
		row := MonthlyReturn{
			Asset: p.Asset,
			Date:  p.Date,
			Year:  p.Date.Year(),
		}

		if p.Asset == prevAsset && prevPrice != 0 {
			r := p.Price/prevPrice - 1
			row.Return = &r
		}

		returns = append(returns, row)
		prevAsset = p.Asset
		prevPrice = p.Price
	}

	return returns
}

// YearlyReturns compounds defined monthly returns into one value per
// (asset, year): product of (1 + r) minus 1, folded in chronological
// order. Rows with a nil return are skipped. Input must be in
// (asset, date) order, which makes (asset, year) groups contiguous and
// the output sorted by (asset, year).
func YearlyReturns(monthly []MonthlyReturn) []YearlyReturn {
	var out []YearlyReturn

	curAsset := ""
	curYear := 0
	prod := 1.0
	open := false

	flush := func() {
		if open {
			out = append(out, YearlyReturn{Asset: curAsset, Year: curYear, Return: prod - 1})
		}
	}

	for _, m := range monthly {
		if m.Return == nil {
			continue
		}

		if !open || m.Asset != curAsset || m.Year != curYear {
			flush()
			curAsset = m.Asset
			curYear = m.Year
			prod = 1.0
			open = true
		}

		prod *= 1 + *m.Return
	}
	flush()

	return out
}

// FilterAssets keeps only the monthly returns of the selected assets,
// preserving order.
func FilterAssets(monthly []MonthlyReturn, assets []string) []MonthlyReturn {
	selected := make(map[string]bool, len(assets))
	for _, a := range assets {
		selected[a] = true
	}

	out := make([]MonthlyReturn, 0, len(monthly))
	for _, m := range monthly {
		if selected[m.Asset] {
			out = append(out, m)
		}
	}
	return out
}

// FilterYears keeps only the yearly returns inside [start, end]
// inclusive. start > end yields an empty result.
func FilterYears(yearly []YearlyReturn, start, end int) []YearlyReturn {
	out := make([]YearlyReturn, 0, len(yearly))
	for _, y := range yearly {
		if y.Year >= start && y.Year <= end {
			out = append(out, y)
		}
	}
	return out
}
