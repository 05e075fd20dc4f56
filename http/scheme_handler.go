package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"scheme-details/domain"
	"scheme-details/service"
)

const (
	defaultChartWidth  = 300
	defaultChartHeight = 200
)

type SchemeHandler struct {
	schemes *service.SchemeService
	nav     *service.NavService
	log     zerolog.Logger
}

func NewSchemeHandler(schemes *service.SchemeService, nav *service.NavService, log zerolog.Logger) *SchemeHandler {
	return &SchemeHandler{schemes: schemes, nav: nav, log: log}
}

func (h *SchemeHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.schemes.Overview(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, overview)
}

func (h *SchemeHandler) Risk(w http.ResponseWriter, r *http.Request) {
	risk, err := h.schemes.Risk(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, risk)
}

// NavChart serves GET /api/schemes/{code}/nav?period=1Y&width=300&height=200.
func (h *SchemeHandler) NavChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period := domain.Period1M
	if raw := q.Get("period"); raw != "" {
		p, ok := domain.ParsePeriod(raw)
		if !ok {
			http.Error(w, "invalid period", http.StatusBadRequest)
			return
		}
		period = p
	}

	width, err := floatParam(q.Get("width"), defaultChartWidth)
	if err != nil {
		http.Error(w, "invalid width", http.StatusBadRequest)
		return
	}
	height, err := floatParam(q.Get("height"), defaultChartHeight)
	if err != nil {
		http.Error(w, "invalid height", http.StatusBadRequest)
		return
	}

	chart, err := h.nav.Chart(r.Context(), chi.URLParam(r, "code"), period, width, height)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, chart)
}

// floatParam parses a finite number; negative values pass through and give
// an empty chart.
func floatParam(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > 1e6 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
