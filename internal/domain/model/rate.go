package model

import (
	"fmt"
	"math"
	"time"
)

// Provider identifies one rate source.
type Provider string

const (
	ProviderReference  Provider = "reference"
	ProviderMastercard Provider = "mastercard"
	ProviderVisa       Provider = "visa"
	ProviderAmex       Provider = "amex"
)

func (p Provider) String() string {
	return string(p)
}

// Rate is a normalized quote: units of quote currency per one unit of base
// currency. Unsupported marks pairs a provider is known not to price; it is
// a valid outcome, not a failure, and callers must check it before Value.
type Rate struct {
	Value       float64 `json:"value"`
	Unsupported bool    `json:"unsupported,omitempty"`
}

func SupportedRate(value float64) Rate {
	return Rate{Value: value}
}

func UnsupportedRate() Rate {
	return Rate{Unsupported: true}
}

// Usable reports whether the rate carries a finite numeric value.
func (r Rate) Usable() bool {
	return !r.Unsupported && !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0)
}

// RateQuery is one rate lookup, built per request and never mutated.
type RateQuery struct {
	Date   time.Time
	Base   Currency
	Quote  Currency
	Amount float64
}

// CacheKey builds the memoization key for this query. Amount is part of the
// key only for providers whose quotes vary with the requested amount.
func (q RateQuery) CacheKey(includeAmount bool) string {
	day := q.Date.UTC().Format("2006-01-02")
	if includeAmount {
		return fmt.Sprintf("%s-%s-%s-%g", day, q.Base, q.Quote, q.Amount)
	}
	return fmt.Sprintf("%s-%s-%s", day, q.Base, q.Quote)
}

// CacheEntry is a memoized rate. Entries are treated as absent once
// now - StoredAt exceeds the cache TTL; expiry is checked lazily on lookup.
type CacheEntry struct {
	Rate     Rate
	StoredAt time.Time
}

// RateSeries is one value per calendar day in a requested range, aligned by
// position with Dates. A nil entry is a leading gap: no value was available
// for that day or any earlier day in the range. Once a value appears, later
// entries are never nil (missing days carry the last known value forward).
type RateSeries struct {
	Base  Currency   `json:"base"`
	Quote Currency   `json:"quote"`
	Dates []string   `json:"dates"`
	Rates []*float64 `json:"rates"`
}
