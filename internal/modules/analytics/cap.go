package analytics

import "github.com/correlio/correlio/pkg/formulas"

// CapForDisplay clamps yearly returns to [-cap, +cap] for charting while
// keeping the true value. The cap is given in percent (100.0 clamps to
// the decimal range [-1.0, +1.0]). Clipped uses exact equality: a value
// exactly at the boundary is not considered clipped. Pure and
// idempotent.
func CapForDisplay(yearly []YearlyReturn, capPct float64) []DisplayReturn {
	capDec := capPct / 100.0

	out := make([]DisplayReturn, 0, len(yearly))
	for _, y := range yearly {
		disp := formulas.Clamp(y.Return, -capDec, capDec)
		out = append(out, DisplayReturn{
			Asset:      y.Asset,
			Year:       y.Year,
			TrueReturn: y.Return,
			DispReturn: disp,
			Clipped:    y.Return != disp,
		})
	}
	return out
}
