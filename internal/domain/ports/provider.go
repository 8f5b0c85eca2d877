package ports

import (
	"context"
	"time"

	"cardfx-service/internal/domain/model"
)

// RateProvider is the upward-facing contract every rate source satisfies.
// GetRate returns an unsupported rate (not an error) for pairs the provider
// is known not to price. GetSeries fills gaps by carrying the last known
// value forward and never fails on individual missing days.
type RateProvider interface {
	Name() model.Provider
	GetRate(ctx context.Context, q model.RateQuery) (model.Rate, error)
	GetSeries(ctx context.Context, start, end time.Time, base, quote model.Currency) (*model.RateSeries, error)
}

// ReferenceResolver supplies the mid-market rate card-network normalizers
// mark up from.
type ReferenceResolver interface {
	Resolve(ctx context.Context, date time.Time, base, quote model.Currency) (model.Rate, error)
}

// Aggregator is the facade the request-handling layer talks to.
type Aggregator interface {
	Compare(ctx context.Context, q model.RateQuery) (*model.Comparison, error)
	Series(ctx context.Context, provider model.Provider, start, end time.Time, base, quote model.Currency) (*model.RateSeries, error)
	Convert(ctx context.Context, provider model.Provider, q model.RateQuery) (*model.ConversionResult, error)
}
