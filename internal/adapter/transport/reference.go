package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/logger"
	"cardfx-service/pkg/utils"
)

// ReferenceClient talks to a frankfurter-style mid-market rate API:
// GET {base}/{date}, GET {base}/latest and the ranged GET {base}/{start}..{end},
// each taking base and symbols query parameters and returning a rates mapping.
type ReferenceClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewReferenceClient(baseURL string, httpClient *http.Client, log *logger.Logger) *ReferenceClient {
	return &ReferenceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

type referenceResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[model.Currency]float64 `json:"rates"`
}

type referenceRangeResponse struct {
	Base      string                                `json:"base"`
	StartDate string                                `json:"start_date"`
	EndDate   string                                `json:"end_date"`
	Rates     map[string]map[model.Currency]float64 `json:"rates"`
}

func (c *ReferenceClient) FetchRates(ctx context.Context, date time.Time, base model.Currency, symbols []model.Currency) (map[model.Currency]float64, error) {
	url := fmt.Sprintf("%s/%s?%s", c.baseURL, utils.FormatDate(date), rateQuery(base, symbols))
	return c.fetchSingle(ctx, url, true)
}

func (c *ReferenceClient) FetchLatestRates(ctx context.Context, base model.Currency, symbols []model.Currency) (map[model.Currency]float64, error) {
	url := fmt.Sprintf("%s/latest?%s", c.baseURL, rateQuery(base, symbols))
	return c.fetchSingle(ctx, url, false)
}

func (c *ReferenceClient) FetchRateRange(ctx context.Context, start, end time.Time, base model.Currency, symbols []model.Currency) (map[string]map[model.Currency]float64, error) {
	url := fmt.Sprintf("%s/%s..%s?%s", c.baseURL, utils.FormatDate(start), utils.FormatDate(end), rateQuery(base, symbols))

	status, body, err := fetchJSON(ctx, c.httpClient, url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: reference API returned status %d", model.ErrUpstream, status)
	}

	var apiResp referenceRangeResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode ranged response: %v", model.ErrParse, err)
	}
	if apiResp.Rates == nil {
		return nil, fmt.Errorf("%w: ranged response carries no rates", model.ErrParse)
	}

	return apiResp.Rates, nil
}

// fetchSingle handles the single-date and latest forms. Only dated lookups
// map 404 to ErrDateNotFound; for the latest form that status is a hard
// upstream failure.
func (c *ReferenceClient) fetchSingle(ctx context.Context, url string, dated bool) (map[model.Currency]float64, error) {
	status, body, err := fetchJSON(ctx, c.httpClient, url)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound && dated:
		return nil, fmt.Errorf("%w: reference API has no fixing for requested date", model.ErrDateNotFound)
	case status != http.StatusOK:
		return nil, fmt.Errorf("%w: reference API returned status %d", model.ErrUpstream, status)
	}

	var apiResp referenceResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", model.ErrParse, err)
	}
	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("%w: response carries no rates", model.ErrParse)
	}

	return apiResp.Rates, nil
}

func rateQuery(base model.Currency, symbols []model.Currency) string {
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.String())
	}
	return fmt.Sprintf("base=%s&symbols=%s", base, strings.Join(codes, ","))
}
