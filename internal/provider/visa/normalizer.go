package visa

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"cardfx-service/internal/domain/model"
)

type calculatorResponse struct {
	ConvertedAmount string `json:"convertedAmount"`
	FXRate          string `json:"fxRate"`
}

// Normalize derives the per-unit rate from a raw calculator response. The
// converted total divided by the requested amount is preferred because it
// reflects the provider's own rounding at that amount; the stated per-unit
// figure is the fallback when the total is absent or the amount is not a
// positive finite number.
func Normalize(raw json.RawMessage, amount float64) (model.Rate, error) {
	var resp calculatorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.Rate{}, fmt.Errorf("%w: failed to decode calculator response: %v", model.ErrParse, err)
	}

	// NaN fails the > 0 comparison; Inf would panic decimal.NewFromFloat.
	if amount > 0 && !math.IsInf(amount, 0) {
		if total, err := parseFigure(resp.ConvertedAmount); err == nil {
			rate := total.Div(decimal.NewFromFloat(amount))
			return model.SupportedRate(rate.InexactFloat64()), nil
		}
	}

	perUnit, err := parseFigure(resp.FXRate)
	if err != nil {
		return model.Rate{}, fmt.Errorf("%w: calculator response carries neither a converted total nor a rate", model.ErrParse)
	}

	return model.SupportedRate(perUnit.InexactFloat64()), nil
}

// parseFigure reads one formatted figure ("1,075.50") from the response.
func parseFigure(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty figure")
	}
	return decimal.NewFromString(s)
}
