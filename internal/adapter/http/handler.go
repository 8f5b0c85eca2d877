package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/internal/domain/ports"
	"cardfx-service/internal/metrics"
	"cardfx-service/internal/service"
	"cardfx-service/pkg/logger"
	"cardfx-service/pkg/utils"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	service ports.Aggregator
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.Aggregator, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

// parseDate interprets an optional YYYY-MM-DD parameter, defaulting to the
// current UTC day when the parameter is absent.
func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return utils.DayUTC(time.Now()), nil
	}
	return utils.ParseDate(dateStr)
}

func parseAmount(amountStr string) (float64, error) {
	if amountStr == "" {
		return 1.0, nil
	}
	return strconv.ParseFloat(amountStr, 64)
}

func (h *Handler) GetComparisonHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.CompareRequestsTotal.Inc()

	base := model.Currency(r.URL.Query().Get("base"))
	quote := model.Currency(r.URL.Query().Get("quote"))

	if base == "" || quote == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameters: base and quote")
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return
	}

	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
		return
	}

	query := model.RateQuery{
		Date:   date,
		Base:   base,
		Quote:  quote,
		Amount: amount,
	}

	ctx := r.Context()
	comparison, err := h.service.Compare(ctx, query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.recordProviderOutcomes(comparison)
	h.sendSuccessResponse(w, comparison)
}

func (h *Handler) recordProviderOutcomes(comparison *model.Comparison) {
	h.metrics.ProviderFetchesTotal.WithLabelValues(string(comparison.Reference.Provider), comparison.Reference.Status).Inc()
	for _, quote := range comparison.Providers {
		h.metrics.ProviderFetchesTotal.WithLabelValues(string(quote.Provider), quote.Status).Inc()
	}
}

func (h *Handler) GetSeriesHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.SeriesRequestsTotal.Inc()

	base := model.Currency(r.URL.Query().Get("base"))
	quote := model.Currency(r.URL.Query().Get("quote"))
	provider := model.Provider(r.URL.Query().Get("provider"))
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if base == "" || quote == "" || startStr == "" || endStr == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameters: base, quote, start, and end")
		return
	}

	start, err := utils.ParseDate(startStr)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid start format, use YYYY-MM-DD")
		return
	}

	end, err := utils.ParseDate(endStr)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid end format, use YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	seriesResult, err := h.service.Series(ctx, provider, start, end, base, quote)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, seriesResult)
}

func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ConversionRequestsTotal.Inc()

	base := model.Currency(r.URL.Query().Get("base"))
	quote := model.Currency(r.URL.Query().Get("quote"))
	provider := model.Provider(r.URL.Query().Get("provider"))

	if base == "" || quote == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameters: base and quote")
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return
	}

	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
		return
	}

	query := model.RateQuery{
		Date:   date,
		Base:   base,
		Quote:  quote,
		Amount: amount,
	}

	ctx := r.Context()
	result, err := h.service.Convert(ctx, provider, query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, result)
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidCurrency):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid currency"
	case errors.Is(err, service.ErrInvalidDateRange):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid date range"
	case errors.Is(err, service.ErrRangeTooWide):
		statusCode = http.StatusBadRequest
		errorMessage = "date range exceeds the maximum of 31 days"
	case errors.Is(err, service.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid amount"
	case errors.Is(err, service.ErrUnknownProvider):
		statusCode = http.StatusBadRequest
		errorMessage = "unknown provider"
	case errors.Is(err, service.ErrPairUnsupported):
		statusCode = http.StatusNotFound
		errorMessage = "currency pair not supported by provider"
	case errors.Is(err, model.ErrUpstream):
		statusCode = http.StatusBadGateway
		errorMessage = "upstream provider failure"
	case errors.Is(err, model.ErrParse):
		statusCode = http.StatusBadGateway
		errorMessage = "upstream provider returned an unreadable response"
	case errors.Is(err, model.ErrDateNotFound):
		statusCode = http.StatusBadGateway
		errorMessage = "upstream provider has no data for the requested date"
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
