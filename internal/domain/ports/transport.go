package ports

import (
	"context"
	"encoding/json"
	"time"

	"cardfx-service/internal/domain/model"
)

// ReferenceTransport reaches the mid-market reference provider. All three
// forms return quote-currency -> rate mappings against the given base.
type ReferenceTransport interface {
	// FetchRates returns the published rates for one calendar day.
	// A day without a published fixing fails with model.ErrDateNotFound;
	// callers fall back to FetchLatestRates.
	FetchRates(ctx context.Context, date time.Time, base model.Currency, symbols []model.Currency) (map[model.Currency]float64, error)

	// FetchLatestRates returns the most recent available rates.
	FetchLatestRates(ctx context.Context, base model.Currency, symbols []model.Currency) (map[model.Currency]float64, error)

	// FetchRateRange returns one mapping per published day in [start, end],
	// keyed by YYYY-MM-DD. Non-trading days are absent from the result.
	FetchRateRange(ctx context.Context, start, end time.Time, base model.Currency, symbols []model.Currency) (map[string]map[model.Currency]float64, error)
}

// MastercardTransport fetches the raw settlement-rate document for a day.
// market selects a regional sub-endpoint; empty means the default
// multi-settlement-currency group.
type MastercardTransport interface {
	FetchSettlementRates(ctx context.Context, date time.Time, market string) (json.RawMessage, error)
}

// VisaTransport fetches the raw calculator response for an explicit amount.
type VisaTransport interface {
	FetchConversion(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error)
}

// AmexTransport fetches the raw fee-adjusted conversion for an amount.
type AmexTransport interface {
	FetchConversion(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error)
}
