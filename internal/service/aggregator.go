package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cardfx-service/internal/domain/model"
	"cardfx-service/internal/domain/ports"
	"cardfx-service/pkg/logger"
	"cardfx-service/pkg/utils"
)

var (
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrRangeTooWide     = errors.New("date range exceeds maximum window")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrPairUnsupported  = errors.New("currency pair not supported by provider")
)

// maxSeriesDays bounds series requests; card-network series cost one
// upstream fetch per day.
const maxSeriesDays = 31

// AggregatorService fans one query out to the reference resolver and every
// card network, derives comparison percentages, and shapes the response.
// One provider failing never hides the others' results.
type AggregatorService struct {
	reference ports.RateProvider
	networks  []ports.RateProvider
	log       *logger.Logger
}

func NewAggregatorService(reference ports.RateProvider, networks []ports.RateProvider, log *logger.Logger) *AggregatorService {
	return &AggregatorService{
		reference: reference,
		networks:  networks,
		log:       log,
	}
}

type fetchResult struct {
	rate model.Rate
	err  error
}

func (s *AggregatorService) Compare(ctx context.Context, q model.RateQuery) (*model.Comparison, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	q.Base, q.Quote = q.Base.Normalize(), q.Quote.Normalize()
	prior := model.RateQuery{Date: q.Date.AddDate(0, 0, -1), Base: q.Base, Quote: q.Quote, Amount: q.Amount}

	providers := append([]ports.RateProvider{s.reference}, s.networks...)
	todays := make([]fetchResult, len(providers))
	priors := make([]fetchResult, len(providers))

	// Both days for every provider fetch concurrently; each goroutine owns
	// its own result slot, so the join needs no further synchronization.
	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(2)
		go func(i int, p ports.RateProvider) {
			defer wg.Done()
			rate, err := p.GetRate(ctx, q)
			todays[i] = fetchResult{rate: rate, err: err}
		}(i, p)
		go func(i int, p ports.RateProvider) {
			defer wg.Done()
			rate, err := p.GetRate(ctx, prior)
			priors[i] = fetchResult{rate: rate, err: err}
		}(i, p)
	}
	wg.Wait()

	var referenceRate *float64
	if todays[0].err == nil && todays[0].rate.Usable() {
		referenceRate = &todays[0].rate.Value
	}

	comparison := &model.Comparison{
		Date:      utils.FormatDate(q.Date),
		Base:      q.Base,
		Quote:     q.Quote,
		Amount:    q.Amount,
		Reference: s.buildQuote(s.reference.Name(), todays[0], priors[0], nil),
	}
	for i, p := range s.networks {
		comparison.Providers = append(comparison.Providers,
			s.buildQuote(p.Name(), todays[i+1], priors[i+1], referenceRate))
	}

	return comparison, nil
}

// buildQuote shapes one provider's slot in the aggregated response. Hard
// failures and non-finite rates become status "error" (logged, never fatal),
// unsupported pairs keep their explicit status, and the prior day contributes
// a day-over-day figure only when it resolved; yesterday is advisory context.
func (s *AggregatorService) buildQuote(name model.Provider, today, prior fetchResult, referenceRate *float64) model.ProviderQuote {
	quote := model.ProviderQuote{Provider: name}

	switch {
	case today.err != nil:
		s.log.Error("Provider lookup failed", "provider", name, "error", today.err)
		quote.Status = model.QuoteStatusError
		return quote
	case today.rate.Unsupported:
		quote.Status = model.QuoteStatusUnsupported
		return quote
	case !today.rate.Usable():
		s.log.Error("Provider returned a non-finite rate", "provider", name, "value", today.rate.Value)
		quote.Status = model.QuoteStatusError
		return quote
	}

	quote.Status = model.QuoteStatusOK
	value := today.rate.Value
	quote.Rate = &value

	if referenceRate != nil {
		quote.DeltaFromReferencePct = pctDelta(value, *referenceRate)
	}
	if prior.err == nil && prior.rate.Usable() {
		quote.DayOverDayPct = pctDelta(value, prior.rate.Value)
	} else if prior.err != nil {
		s.log.Debug("Prior-day lookup unavailable", "provider", name, "error", prior.err)
	}

	return quote
}

// pctDelta is (value - baseline) / baseline * 100, rounded to 4 decimal
// places so the payload carries clean percentages. nil when the baseline
// cannot serve as a divisor.
func pctDelta(value, baseline float64) *float64 {
	if baseline == 0 {
		return nil
	}
	base := decimal.NewFromFloat(baseline)
	delta := decimal.NewFromFloat(value).Sub(base).Div(base).Mul(decimal.NewFromInt(100)).Round(4)
	f, _ := delta.Float64()
	return &f
}

func (s *AggregatorService) Series(ctx context.Context, provider model.Provider, start, end time.Time, base, quote model.Currency) (*model.RateSeries, error) {
	if !base.Normalize().Valid() || !quote.Normalize().Valid() {
		return nil, ErrInvalidCurrency
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	if utils.SpanDays(start, end) > maxSeriesDays {
		return nil, ErrRangeTooWide
	}

	source, err := s.providerByName(provider)
	if err != nil {
		return nil, err
	}

	return source.GetSeries(ctx, start, end, base, quote)
}

func (s *AggregatorService) Convert(ctx context.Context, provider model.Provider, q model.RateQuery) (*model.ConversionResult, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	source, err := s.providerByName(provider)
	if err != nil {
		return nil, err
	}

	rate, err := source.GetRate(ctx, q)
	if err != nil {
		return nil, err
	}
	if rate.Unsupported {
		return nil, ErrPairUnsupported
	}
	if !rate.Usable() {
		return nil, fmt.Errorf("%w: provider %s returned a non-finite rate", model.ErrParse, source.Name())
	}

	return &model.ConversionResult{
		Provider: source.Name(),
		Base:     q.Base.Normalize(),
		Quote:    q.Quote.Normalize(),
		Amount:   q.Amount,
		Rate:     rate.Value,
		Result:   q.Amount * rate.Value,
		Date:     utils.FormatDate(q.Date),
	}, nil
}

func (s *AggregatorService) providerByName(name model.Provider) (ports.RateProvider, error) {
	if name == "" || name == s.reference.Name() {
		return s.reference, nil
	}
	for _, p := range s.networks {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, ErrUnknownProvider
}

func validateQuery(q model.RateQuery) error {
	if !q.Base.Normalize().Valid() || !q.Quote.Normalize().Valid() {
		return ErrInvalidCurrency
	}
	// ParseFloat accepts "NaN" and "Inf", and neither fails the <= 0 check.
	if q.Amount <= 0 || math.IsNaN(q.Amount) || math.IsInf(q.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}
