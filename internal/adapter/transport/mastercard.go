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

// MastercardClient fetches raw settlement-rate documents. The default group
// endpoint returns one entry per settlement currency; the regional variant
// under /market/{id} returns exactly one entry for that sub-market.
type MastercardClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewMastercardClient(baseURL string, httpClient *http.Client, log *logger.Logger) *MastercardClient {
	return &MastercardClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

func (c *MastercardClient) FetchSettlementRates(ctx context.Context, date time.Time, market string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/settlement/rates?date=%s", c.baseURL, utils.FormatDate(date))
	if market != "" {
		url = fmt.Sprintf("%s/settlement/rates/market/%s?date=%s", c.baseURL, market, utils.FormatDate(date))
	}

	status, body, err := fetchJSON(ctx, c.httpClient, url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: settlement API returned status %d", model.ErrUpstream, status)
	}

	return json.RawMessage(body), nil
}
