package visa

import (
	"context"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/internal/domain/ports"
	"cardfx-service/internal/series"
	"cardfx-service/pkg/logger"
)

// Provider prices pairs through the calculator endpoint. Quotes reflect
// provider-side rounding at the requested amount, so the amount is part of
// the cache key.
type Provider struct {
	transport ports.VisaTransport
	cache     ports.RateCache
	log       *logger.Logger
}

func NewProvider(transport ports.VisaTransport, cache ports.RateCache, log *logger.Logger) *Provider {
	return &Provider{
		transport: transport,
		cache:     cache,
		log:       log,
	}
}

func (p *Provider) Name() model.Provider {
	return model.ProviderVisa
}

func (p *Provider) GetRate(ctx context.Context, q model.RateQuery) (model.Rate, error) {
	base, quote := q.Base.Normalize(), q.Quote.Normalize()
	if base == quote {
		return model.SupportedRate(1.0), nil
	}

	query := model.RateQuery{Date: q.Date, Base: base, Quote: quote, Amount: q.Amount}
	key := query.CacheKey(true)
	if entry, found := p.cache.Get(ctx, key); found {
		return entry.Rate, nil
	}

	raw, err := p.transport.FetchConversion(ctx, q.Date, base, quote, q.Amount)
	if err != nil {
		return model.Rate{}, err
	}

	rate, err := Normalize(raw, q.Amount)
	if err != nil {
		return model.Rate{}, err
	}

	if err := p.cache.Set(ctx, key, rate); err != nil {
		p.log.Error("Failed to cache calculator rate", "error", err, "key", key)
	}

	return rate, nil
}

func (p *Provider) GetSeries(ctx context.Context, start, end time.Time, base, quote model.Currency) (*model.RateSeries, error) {
	result := &model.RateSeries{Base: base.Normalize(), Quote: quote.Normalize()}

	result.Dates, result.Rates = series.Assemble(ctx, start, end, func(ctx context.Context, day time.Time) (model.Rate, error) {
		return p.GetRate(ctx, model.RateQuery{Date: day, Base: base, Quote: quote, Amount: 1})
	})

	return result, nil
}
