package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/correlio/correlio/internal/modules/prices"
)

// fixtureCSV is 24 months of 2019-2020 data for two assets.
func fixtureCSV() string {
	var sb strings.Builder
	sb.WriteString("date,asset,price,category\n")

	for i := 0; i < 24; i++ {
		d := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i+1, -1)
		pa := 100 + float64(i)*3 + float64(i%4)*2
		pb := 50 + float64(i)*2 + float64((i*5)%7)
		sb.WriteString(fmt.Sprintf("%s,SPX,%.2f,Equity\n", d.Format("2006-01-02"), pa))
		sb.WriteString(fmt.Sprintf("%s,GOLD,%.2f,Commodity\n", d.Format("2006-01-02"), pb))
	}
	return sb.String()
}

func newTestHandler(t *testing.T, csvContent string) *Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0644))

	loader := prices.NewLoader(path, zerolog.Nop())
	return NewHandler(loader, NewService(zerolog.Nop()), zerolog.Nop())
}

func postCompute(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/compute", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleCompute(w, req)
	return w
}

func TestHandleCompute_Success(t *testing.T) {
	h := newTestHandler(t, fixtureCSV())

	w := postCompute(t, h, `{
		"assets": ["SPX", "GOLD"],
		"yearRange": [2019, 2020],
		"capPct": 100,
		"rollingWindowMonths": 12
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var payload Payload
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))

	assert.Equal(t, []string{"SPX", "GOLD"}, payload.Inputs.Assets)
	assert.Len(t, payload.YearlyReturns, 4)
	require.NotNil(t, payload.PearsonMatrix)
	require.NotNil(t, payload.OverlapYears)
	assert.NotEmpty(t, payload.RollingCorrelation)
}

func TestHandleCompute_Defaults(t *testing.T) {
	h := newTestHandler(t, fixtureCSV())

	w := postCompute(t, h, `{"assets": ["SPX"], "yearRange": [2019, 2020]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var payload Payload
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	assert.Equal(t, CapPctDefault, payload.Inputs.CapPct)
	assert.Equal(t, WindowMonthsDflt, payload.Inputs.RollingWindowMonths)
}

func TestHandleCompute_ValidationErrors(t *testing.T) {
	h := newTestHandler(t, fixtureCSV())

	elevenAssets := `["a1","a2","a3","a4","a5","a6","a7","a8","a9","a10","a11"]`

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"no assets", `{"assets": [], "yearRange": [2019, 2020]}`, "assets must contain"},
		{"too many assets", `{"assets": ` + elevenAssets + `, "yearRange": [2019, 2020]}`, "assets must contain"},
		{"duplicate asset", `{"assets": ["SPX", "SPX"], "yearRange": [2019, 2020]}`, "duplicate asset"},
		{"empty asset name", `{"assets": ["SPX", "  "], "yearRange": [2019, 2020]}`, "empty names"},
		{"start after end", `{"assets": ["SPX"], "yearRange": [2020, 2019]}`, "Invalid yearRange"},
		{"cap too low", `{"assets": ["SPX"], "yearRange": [2019, 2020], "capPct": 10}`, "capPct must be within"},
		{"cap too high", `{"assets": ["SPX"], "yearRange": [2019, 2020], "capPct": 5000}`, "capPct must be within"},
		{"window too short", `{"assets": ["SPX"], "yearRange": [2019, 2020], "rollingWindowMonths": 1}`, "rollingWindowMonths must be within"},
		{"window too long", `{"assets": ["SPX"], "yearRange": [2019, 2020], "rollingWindowMonths": 240}`, "rollingWindowMonths must be within"},
		{"range before data", `{"assets": ["SPX"], "yearRange": [2018, 2020]}`, "yearRange must be within [2019, 2020]"},
		{"range after data", `{"assets": ["SPX"], "yearRange": [2019, 2021]}`, "yearRange must be within [2019, 2020]"},
		{"malformed body", `{"assets": "SPX"}`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postCompute(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestHandleCompute_SchemaError(t *testing.T) {
	h := newTestHandler(t, "date,asset,price\n2019-01-31,SPX,100\n")

	w := postCompute(t, h, `{"assets": ["SPX"], "yearRange": [2019, 2019]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must contain columns")
}

func TestHandleCompute_PriceFileMissing(t *testing.T) {
	loader := prices.NewLoader(filepath.Join(t.TempDir(), "absent.csv"), zerolog.Nop())
	h := NewHandler(loader, NewService(zerolog.Nop()), zerolog.Nop())

	w := postCompute(t, h, `{"assets": ["SPX"], "yearRange": [2019, 2019]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load price table")
}

func TestHandleAssets(t *testing.T) {
	h := newTestHandler(t, fixtureCSV())

	req := httptest.NewRequest("GET", "/api/assets", nil)
	w := httptest.NewRecorder()
	h.HandleAssets(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Assets []prices.AssetMeta `json:"assets"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Assets, 2)

	// Sorted by (category, asset)
	assert.Equal(t, "GOLD", response.Assets[0].Asset)
	assert.Equal(t, "Commodity", response.Assets[0].Category)
	assert.Equal(t, "SPX", response.Assets[1].Asset)
}
