package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/logger"
	"cardfx-service/pkg/utils"
)

// VisaClient fetches raw calculator responses. The calculator is queried
// with an explicit amount and answers with formatted string figures.
type VisaClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewVisaClient(baseURL string, httpClient *http.Client, log *logger.Logger) *VisaClient {
	return &VisaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

func (c *VisaClient) FetchConversion(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/calculator?from=%s&to=%s&amount=%s&date=%s",
		c.baseURL, base, quote, strconv.FormatFloat(amount, 'f', -1, 64), utils.FormatDate(date))

	status, body, err := fetchJSON(ctx, c.httpClient, url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: calculator API returned status %d", model.ErrUpstream, status)
	}

	return json.RawMessage(body), nil
}
