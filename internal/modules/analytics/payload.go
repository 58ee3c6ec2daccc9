package analytics

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/correlio/correlio/internal/modules/prices"
)

// Service orchestrates the return/correlation pipeline into one payload.
// Stateless: every call recomputes from the supplied price table.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new analytics service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("component", "analytics").Logger(),
	}
}

// BuildPayload runs the full pipeline for one request. It assumes the
// request parameters were validated by the caller, but tolerates
// yearRange start > end by producing an empty result instead of
// failing.
func (s *Service) BuildPayload(points []prices.PricePoint, req ComputeRequest) *Payload {
	yearStart, yearEnd := req.YearRange[0], req.YearRange[1]

	monthly := MonthlyReturns(points)
	selected := FilterAssets(monthly, req.Assets)

	yearly := FilterYears(YearlyReturns(selected), yearStart, yearEnd)

	display := CapForDisplay(yearly, req.CapPct)
	sort.SliceStable(display, func(i, j int) bool {
		if display[i].Asset != display[j].Asset {
			return display[i].Asset < display[j].Asset
		}
		return display[i].Year < display[j].Year
	})

	payload := &Payload{
		Inputs:        req,
		YearlyReturns: display,
	}

	// Matrices only when at least two assets survive filtering; the
	// guard is on the wide column count, not the request length.
	wide := Wide(yearly, req.Assets)
	if len(wide.Assets) >= 2 {
		payload.PearsonMatrix = wide.Pearson(MinOverlapYears)
		payload.OverlapYears = wide.OverlapCounts()
	}

	// Rolling correlation is only defined for exactly two assets.
	if len(req.Assets) == 2 {
		rolling := RollingCorrelation(monthly, req.Assets[0], req.Assets[1], req.RollingWindowMonths)
		payload.RollingCorrelation = FilterRollingYears(rolling, yearStart, yearEnd)
	}

	s.log.Debug().
		Strs("assets", req.Assets).
		Int("year_start", yearStart).
		Int("year_end", yearEnd).
		Int("yearly_rows", len(display)).
		Bool("matrices", payload.PearsonMatrix != nil).
		Int("rolling_points", len(payload.RollingCorrelation)).
		Msg("Built analytics payload")

	return payload
}
