package prices

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Required CSV columns. Extra columns are tolerated; "description" is
// retained when present.
var requiredColumns = []string{"date", "asset", "price", "category"}

// SchemaError reports required columns missing from the CSV header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("price table must contain columns: %s (missing: %s)",
		strings.Join(requiredColumns, ", "), strings.Join(e.Missing, ", "))
}

// Loader reads and cleans the raw price table. Every call to Load reads
// the file again and returns a fresh slice, so callers may not share or
// mutate state across requests.
type Loader struct {
	path string
	log  zerolog.Logger
}

// NewLoader creates a new price loader
func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{
		path: path,
		log:  log.With().Str("component", "prices").Logger(),
	}
}

// Load reads the CSV, drops rows with an unparseable date or price or an
// empty asset, and returns the remaining rows sorted by (asset, date).
func (l *Loader) Load() ([]PricePoint, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price table: %w", err)
	}
	defer f.Close()

	return l.parse(f)
}

func (l *Loader) parse(r io.Reader) ([]PricePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read price table header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	descIdx, hasDesc := cols["description"]

	var points []PricePoint
	dropped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read price table row: %w", err)
		}

		date, ok := parseDate(field(record, cols["date"]))
		asset := strings.TrimSpace(field(record, cols["asset"]))
		price, priceOK := parsePrice(field(record, cols["price"]))

		if !ok || asset == "" || !priceOK {
			dropped++
			continue
		}

		point := PricePoint{
			Date:     date,
			Asset:    asset,
			Price:    price,
			Category: strings.TrimSpace(field(record, cols["category"])),
		}
		if hasDesc {
			point.Description = strings.TrimSpace(field(record, descIdx))
		}
		points = append(points, point)
	}

	// Stable sort keeps duplicate (asset, date) rows in input order so
	// downstream consecutive-difference logic sees them as successive
	// observations.
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Asset != points[j].Asset {
			return points[i].Asset < points[j].Asset
		}
		return points[i].Date.Before(points[j].Date)
	})

	if dropped > 0 {
		l.log.Debug().Int("dropped", dropped).Int("kept", len(points)).Msg("Dropped unparseable price rows")
	}

	return points, nil
}

// Assets returns the distinct (asset, category, description) rows of a
// cleaned table, sorted by category then asset.
func Assets(points []PricePoint) []AssetMeta {
	seen := make(map[string]bool, len(points))
	metas := make([]AssetMeta, 0)

	for _, p := range points {
		if seen[p.Asset] {
			continue
		}
		seen[p.Asset] = true
		metas = append(metas, AssetMeta{
			Asset:       p.Asset,
			Category:    p.Category,
			Description: p.Description,
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		if metas[i].Category != metas[j].Category {
			return metas[i].Category < metas[j].Category
		}
		return metas[i].Asset < metas[j].Asset
	})

	return metas
}

// YearBounds returns the min and max calendar year present in the table.
// ok is false for an empty table.
func YearBounds(points []PricePoint) (minYear, maxYear int, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}

	minYear = points[0].Date.Year()
	maxYear = minYear
	for _, p := range points[1:] {
		y := p.Date.Year()
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	return minYear, maxYear, true
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// Day-before-month layouts tried in order. Single-digit layout tokens
// also accept zero-padded values.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006/1/2",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
