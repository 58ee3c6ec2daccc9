package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/correlio/correlio/internal/modules/prices"
)

// PricesCheckJob periodically re-reads the price table and logs its
// shape, surfacing a broken or stale CSV in the logs before users hit
// compute errors. It deliberately caches nothing: the analytics path
// always loads fresh data itself.
type PricesCheckJob struct {
	loader *prices.Loader
	log    zerolog.Logger
}

// NewPricesCheckJob creates a new price table check job
func NewPricesCheckJob(loader *prices.Loader, log zerolog.Logger) *PricesCheckJob {
	return &PricesCheckJob{
		loader: loader,
		log:    log.With().Str("job", "prices_check").Logger(),
	}
}

// Name returns the job name
func (j *PricesCheckJob) Name() string {
	return "prices_check"
}

// Run loads the price table and logs row and asset counts
func (j *PricesCheckJob) Run() error {
	points, err := j.loader.Load()
	if err != nil {
		return fmt.Errorf("price table check failed: %w", err)
	}

	assets := prices.Assets(points)
	minYear, maxYear, ok := prices.YearBounds(points)

	event := j.log.Info().
		Int("rows", len(points)).
		Int("assets", len(assets))
	if ok {
		event = event.Int("min_year", minYear).Int("max_year", maxYear)
	}
	event.Msg("Price table check")

	if len(points) == 0 {
		j.log.Warn().Msg("Price table is empty after cleaning")
	}

	return nil
}
