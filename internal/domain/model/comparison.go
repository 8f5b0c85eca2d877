package model

// Quote statuses surfaced in aggregated responses.
const (
	QuoteStatusOK          = "ok"
	QuoteStatusUnsupported = "unsupported"
	QuoteStatusError       = "error"
)

// ProviderQuote is one provider's contribution to an aggregated comparison.
// Rate and the deltas are nil unless Status is "ok"; DayOverDayPct is nil
// whenever yesterday's rate could not be determined.
type ProviderQuote struct {
	Provider              Provider `json:"provider"`
	Status                string   `json:"status"`
	Rate                  *float64 `json:"rate,omitempty"`
	DeltaFromReferencePct *float64 `json:"delta_from_reference_pct,omitempty"`
	DayOverDayPct         *float64 `json:"day_over_day_pct,omitempty"`
}

// Comparison is the aggregated response for one (date, base, quote, amount)
// query: the reference quote plus every card network's, with deltas.
type Comparison struct {
	Date      string          `json:"date"`
	Base      Currency        `json:"base"`
	Quote     Currency        `json:"quote"`
	Amount    float64         `json:"amount"`
	Reference ProviderQuote   `json:"reference"`
	Providers []ProviderQuote `json:"providers"`
}

// ConversionResult is the payload of the convert endpoint.
type ConversionResult struct {
	Provider Provider `json:"provider"`
	Base     Currency `json:"base"`
	Quote    Currency `json:"quote"`
	Amount   float64  `json:"amount"`
	Rate     float64  `json:"rate"`
	Result   float64  `json:"result"`
	Date     string   `json:"date"`
}
