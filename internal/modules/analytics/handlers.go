package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/correlio/correlio/internal/modules/prices"
)

// Request parameter bounds, enforced here so the core can assume clean
// inputs.
const (
	MaxAssets        = 10
	CapPctMin        = 50.0
	CapPctMax        = 2000.0
	CapPctDefault    = 100.0
	WindowMonthsMin  = 2
	WindowMonthsMax  = 120
	WindowMonthsDflt = 24
)

// Handler handles analytics HTTP requests
type Handler struct {
	loader  *prices.Loader
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(loader *prices.Loader, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		loader:  loader,
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// HandleAssets handles GET /api/assets - distinct assets with metadata
func (h *Handler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	points, err := h.loader.Load()
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"assets": prices.Assets(points),
	})
}

// HandleCompute handles POST /api/compute - run the analytics pipeline
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Defaults mirror the absent-field behavior of the reference API
	if req.CapPct == 0 {
		req.CapPct = CapPctDefault
	}
	if req.RollingWindowMonths == 0 {
		req.RollingWindowMonths = WindowMonthsDflt
	}

	if msg := validateRequest(&req); msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	points, err := h.loader.Load()
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	minYear, maxYear, ok := prices.YearBounds(points)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Price table is empty")
		return
	}
	if req.YearRange[0] < minYear || req.YearRange[1] > maxYear {
		h.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("yearRange must be within [%d, %d]", minYear, maxYear))
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.BuildPayload(points, req))
}

// validateRequest checks parameter bounds; returns an error message or ""
func validateRequest(req *ComputeRequest) string {
	if len(req.Assets) < 1 || len(req.Assets) > MaxAssets {
		return fmt.Sprintf("assets must contain 1-%d entries", MaxAssets)
	}

	seen := make(map[string]bool, len(req.Assets))
	for _, a := range req.Assets {
		if strings.TrimSpace(a) == "" {
			return "assets must not contain empty names"
		}
		if seen[a] {
			return fmt.Sprintf("duplicate asset: %s", a)
		}
		seen[a] = true
	}

	if req.YearRange[0] > req.YearRange[1] {
		return "Invalid yearRange: start > end"
	}

	if req.CapPct < CapPctMin || req.CapPct > CapPctMax {
		return fmt.Sprintf("capPct must be within [%.0f, %.0f]", CapPctMin, CapPctMax)
	}

	if req.RollingWindowMonths < WindowMonthsMin || req.RollingWindowMonths > WindowMonthsMax {
		return fmt.Sprintf("rollingWindowMonths must be within [%d, %d]", WindowMonthsMin, WindowMonthsMax)
	}

	return ""
}

func (h *Handler) respondLoadError(w http.ResponseWriter, err error) {
	var schemaErr *prices.SchemaError
	if errors.As(err, &schemaErr) {
		h.log.Warn().Err(err).Msg("Price table schema error")
		h.writeError(w, http.StatusBadRequest, schemaErr.Error())
		return
	}

	h.log.Error().Err(err).Msg("Failed to load price table")
	h.writeError(w, http.StatusInternalServerError, "Failed to load price table")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
