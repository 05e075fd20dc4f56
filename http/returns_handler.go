package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"scheme-details/domain"
	"scheme-details/service"
)

type ReturnsHandler struct {
	service *service.ProjectionService
	log     zerolog.Logger
}

func NewReturnsHandler(service *service.ProjectionService, log zerolog.Logger) *ReturnsHandler {
	return &ReturnsHandler{service: service, log: log}
}

type calculateResponse struct {
	ID         string  `json:"id"`
	AnnualRate float64 `json:"annual_rate"`
	domain.InvestmentResult
	ReturnPercent float64 `json:"return_percent"`
}

func (h *ReturnsHandler) CalculateReturns(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.InvestmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, calculateResponse{
		ID:               record.ID,
		AnnualRate:       record.AnnualRate,
		InvestmentResult: record.Result,
		ReturnPercent:    record.Result.ReturnPercent(),
	})
}

type optionsResponse struct {
	AnnualRate float64                             `json:"annual_rate"`
	Bounds     map[domain.Mode]domain.AmountBounds `json:"bounds"`
	Tenures    []domain.TenureOption               `json:"tenures"`
}

func (h *ReturnsHandler) Options(w http.ResponseWriter, r *http.Request) {
	bounds := make(map[domain.Mode]domain.AmountBounds, 2)
	for _, mode := range []domain.Mode{domain.ModeSIP, domain.ModeLumpSum} {
		b, err := h.service.Bounds(mode)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		bounds[mode] = b
	}

	writeJSON(w, h.log, http.StatusOK, optionsResponse{
		AnnualRate: h.service.AnnualRate(),
		Bounds:     bounds,
		Tenures:    h.service.TenureOptions(),
	})
}

func (h *ReturnsHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if records == nil {
		records = []domain.ProjectionRecord{}
	}
	writeJSON(w, h.log, http.StatusOK, records)
}
