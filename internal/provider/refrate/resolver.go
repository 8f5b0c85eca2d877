package refrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/internal/domain/ports"
	"cardfx-service/internal/series"
	"cardfx-service/pkg/logger"
	"cardfx-service/pkg/utils"
)

// Resolver derives mid-market rates for arbitrary pairs from a provider that
// only publishes rates against a single reference currency. Depending on the
// pair it returns the published rate directly, its inverse, or the
// triangulated cross-rate of the two legs.
type Resolver struct {
	transport ports.ReferenceTransport
	cache     ports.RateCache
	reference model.Currency
	log       *logger.Logger
}

func NewResolver(transport ports.ReferenceTransport, cache ports.RateCache, reference model.Currency, log *logger.Logger) *Resolver {
	return &Resolver{
		transport: transport,
		cache:     cache,
		reference: reference.Normalize(),
		log:       log,
	}
}

func (r *Resolver) Name() model.Provider {
	return model.ProviderReference
}

func (r *Resolver) GetRate(ctx context.Context, q model.RateQuery) (model.Rate, error) {
	return r.Resolve(ctx, q.Date, q.Base, q.Quote)
}

// Resolve returns quote units per one base unit for the given day. Equal
// codes short-circuit to 1.0 with no network call. A day the provider has
// no fixing for falls back to its latest available rates; any other failure
// is a hard upstream error.
func (r *Resolver) Resolve(ctx context.Context, date time.Time, base, quote model.Currency) (model.Rate, error) {
	base, quote = base.Normalize(), quote.Normalize()
	if base == quote {
		return model.SupportedRate(1.0), nil
	}

	query := model.RateQuery{Date: date, Base: base, Quote: quote}
	key := query.CacheKey(false)
	if entry, found := r.cache.Get(ctx, key); found {
		return entry.Rate, nil
	}

	rates, err := r.fetchWithFallback(ctx, date, r.symbolsFor(base, quote))
	if err != nil {
		return model.Rate{}, err
	}

	value, err := r.derive(rates, base, quote)
	if err != nil {
		return model.Rate{}, err
	}

	rate := model.SupportedRate(value)
	if err := r.cache.Set(ctx, key, rate); err != nil {
		r.log.Error("Failed to cache reference rate", "error", err, "key", key)
	}

	return rate, nil
}

// symbolsFor lists the legs a lookup needs: one when the reference currency
// is part of the pair, both otherwise.
func (r *Resolver) symbolsFor(base, quote model.Currency) []model.Currency {
	switch {
	case base == r.reference:
		return []model.Currency{quote}
	case quote == r.reference:
		return []model.Currency{base}
	default:
		return []model.Currency{base, quote}
	}
}

// fetchWithFallback asks for the day's fixing and retries on the provider's
// latest-available form when the day has none (weekends, holidays).
func (r *Resolver) fetchWithFallback(ctx context.Context, date time.Time, symbols []model.Currency) (map[model.Currency]float64, error) {
	rates, err := r.transport.FetchRates(ctx, date, r.reference, symbols)
	if err == nil {
		return rates, nil
	}
	if !errors.Is(err, model.ErrDateNotFound) {
		return nil, err
	}

	r.log.Info("No fixing for date, falling back to latest", "date", utils.FormatDate(date))
	return r.transport.FetchLatestRates(ctx, r.reference, symbols)
}

// derive turns reference-based leg rates into the pair rate: direct when the
// base is the reference currency, inverted when the quote is, triangulated
// (quote leg over base leg) otherwise.
func (r *Resolver) derive(rates map[model.Currency]float64, base, quote model.Currency) (float64, error) {
	if base == r.reference {
		value, exists := rates[quote]
		if !exists {
			return 0, fmt.Errorf("%w: rate not found for currency %s", model.ErrParse, quote)
		}
		return value, nil
	}

	if quote == r.reference {
		value, exists := rates[base]
		if !exists {
			return 0, fmt.Errorf("%w: rate not found for currency %s", model.ErrParse, base)
		}
		if value == 0 {
			return 0, fmt.Errorf("%w: zero rate for currency %s", model.ErrParse, base)
		}
		return 1.0 / value, nil
	}

	baseLeg, baseExists := rates[base]
	quoteLeg, quoteExists := rates[quote]
	if !baseExists {
		return 0, fmt.Errorf("%w: rate not found for currency %s", model.ErrParse, base)
	}
	if !quoteExists {
		return 0, fmt.Errorf("%w: rate not found for currency %s", model.ErrParse, quote)
	}
	if baseLeg == 0 {
		return 0, fmt.Errorf("%w: zero rate for currency %s", model.ErrParse, base)
	}

	return quoteLeg / baseLeg, nil
}

// GetSeries queries the provider once for the whole range and applies the
// carry-forward policy over the requested span, since the batched response
// omits non-trading days.
func (r *Resolver) GetSeries(ctx context.Context, start, end time.Time, base, quote model.Currency) (*model.RateSeries, error) {
	base, quote = base.Normalize(), quote.Normalize()

	result := &model.RateSeries{Base: base, Quote: quote}

	if base == quote {
		days := utils.EnumerateDays(start, end)
		for _, day := range days {
			v := 1.0
			result.Dates = append(result.Dates, utils.FormatDate(day))
			result.Rates = append(result.Rates, &v)
		}
		return result, nil
	}

	byDay, err := r.transport.FetchRateRange(ctx, start, end, r.reference, r.symbolsFor(base, quote))
	if err != nil {
		return nil, err
	}

	result.Dates, result.Rates = series.Assemble(ctx, start, end, func(ctx context.Context, day time.Time) (model.Rate, error) {
		rates, published := byDay[utils.FormatDate(day)]
		if !published {
			return model.Rate{}, fmt.Errorf("%w: %s", model.ErrDateNotFound, utils.FormatDate(day))
		}
		value, err := r.derive(rates, base, quote)
		if err != nil {
			return model.Rate{}, err
		}
		return model.SupportedRate(value), nil
	})

	return result, nil
}
