package mastercard

import (
	"context"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/internal/domain/ports"
	"cardfx-service/internal/series"
	"cardfx-service/pkg/logger"
)

// Provider prices pairs off the settlement-rate feed. Rates are the
// reference mid-market rate adjusted by the feed's percentage variance, so
// every lookup also consults the reference resolver. Outcomes are memoized
// in the provider's own cache, unsupported pairs included: those are
// deterministic per (date, pair).
type Provider struct {
	transport ports.MastercardTransport
	reference ports.ReferenceResolver
	cache     ports.RateCache
	log       *logger.Logger
}

func NewProvider(transport ports.MastercardTransport, reference ports.ReferenceResolver, cache ports.RateCache, log *logger.Logger) *Provider {
	return &Provider{
		transport: transport,
		reference: reference,
		cache:     cache,
		log:       log,
	}
}

func (p *Provider) Name() model.Provider {
	return model.ProviderMastercard
}

func (p *Provider) GetRate(ctx context.Context, q model.RateQuery) (model.Rate, error) {
	base, quote := q.Base.Normalize(), q.Quote.Normalize()
	if base == quote {
		return model.SupportedRate(1.0), nil
	}

	query := model.RateQuery{Date: q.Date, Base: base, Quote: quote}
	key := query.CacheKey(false)
	if entry, found := p.cache.Get(ctx, key); found {
		return entry.Rate, nil
	}

	refRate, err := p.reference.Resolve(ctx, q.Date, base, quote)
	if err != nil {
		return model.Rate{}, err
	}

	market := MarketFor(base)
	raw, err := p.transport.FetchSettlementRates(ctx, q.Date, market)
	if err != nil {
		return model.Rate{}, err
	}

	rate, err := Normalize(raw, base, quote, refRate.Value, market != "")
	if err != nil {
		return model.Rate{}, err
	}

	if err := p.cache.Set(ctx, key, rate); err != nil {
		p.log.Error("Failed to cache settlement rate", "error", err, "key", key)
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
