package analytics

import "time"

// MonthlyReturn is the relative price change between two consecutive
// observations of the same asset. Return is nil for the first observation
// of each asset.
type MonthlyReturn struct {
	Asset  string
	Date   time.Time
	Return *float64
	Year   int
}

// YearlyReturn is the compounded return of one asset over one calendar
// year, in decimal (0.15 = 15%).
type YearlyReturn struct {
	Asset  string
	Year   int
	Return float64
}

// DisplayReturn is a yearly return with a presentation-capped variant.
type DisplayReturn struct {
	Asset      string  `json:"asset"`
	Year       int     `json:"year"`
	TrueReturn float64 `json:"true_return"`
	DispReturn float64 `json:"disp_return"`
	Clipped    bool    `json:"clipped"`
}

// RollingPoint is one year-end sample of the rolling correlation series.
type RollingPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ComputeRequest carries the validated parameters of one computation.
type ComputeRequest struct {
	Assets              []string `json:"assets"`
	YearRange           [2]int   `json:"yearRange"`
	CapPct              float64  `json:"capPct"`
	RollingWindowMonths int      `json:"rollingWindowMonths"`
}

// Payload is the full analytics response. Matrix cells are nil when the
// pair has insufficient overlap; whole sections are null (nil) when not
// computed at all, which callers must distinguish from computed-but-empty.
type Payload struct {
	Inputs             ComputeRequest                 `json:"inputs"`
	YearlyReturns      []DisplayReturn                `json:"yearlyReturns"`
	RollingCorrelation []RollingPoint                 `json:"rollingCorrelation"`
	PearsonMatrix      map[string]map[string]*float64 `json:"pearsonMatrix"`
	OverlapYears       map[string]map[string]int      `json:"overlapYears"`
}
