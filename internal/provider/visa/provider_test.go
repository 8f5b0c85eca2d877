package visa

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/logger"
)

type MockCalculatorTransport struct {
	FetchConversionFunc func(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error)
	calls               int
}

func (m *MockCalculatorTransport) FetchConversion(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error) {
	m.calls++
	return m.FetchConversionFunc(ctx, date, base, quote, amount)
}

type MockRateCache struct {
	GetFunc func(ctx context.Context, key string) (model.CacheEntry, bool)
	SetFunc func(ctx context.Context, key string, rate model.Rate) error
}

func (m *MockRateCache) Get(ctx context.Context, key string) (model.CacheEntry, bool) {
	return m.GetFunc(ctx, key)
}

func (m *MockRateCache) Set(ctx context.Context, key string, rate model.Rate) error {
	return m.SetFunc(ctx, key, rate)
}

func mapCache() *MockRateCache {
	entries := make(map[string]model.CacheEntry)
	return &MockRateCache{
		GetFunc: func(ctx context.Context, key string) (model.CacheEntry, bool) {
			entry, found := entries[key]
			return entry, found
		},
		SetFunc: func(ctx context.Context, key string, rate model.Rate) error {
			entries[key] = model.CacheEntry{Rate: rate, StoredAt: time.Now()}
			return nil
		},
	}
}

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestProvider_GetRate(t *testing.T) {
	transport := &MockCalculatorTransport{
		FetchConversionFunc: func(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error) {
			// The calculator prices the exact requested amount.
			return json.RawMessage(fmt.Sprintf(`{"convertedAmount":"%.2f"}`, amount*1.075)), nil
		},
	}
	p := NewProvider(transport, mapCache(), logger.NewNop())

	rate, err := p.GetRate(context.Background(), model.RateQuery{Date: testDay, Base: "EUR", Quote: "USD", Amount: 100})

	require.NoError(t, err)
	assert.InDelta(t, 1.075, rate.Value, 1e-9)
	assert.Equal(t, 1, transport.calls)
}

func TestProvider_AmountIsPartOfTheKey(t *testing.T) {
	transport := &MockCalculatorTransport{
		FetchConversionFunc: func(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error) {
			return json.RawMessage(fmt.Sprintf(`{"convertedAmount":"%.2f"}`, amount*1.075)), nil
		},
	}
	p := NewProvider(transport, mapCache(), logger.NewNop())

	q := model.RateQuery{Date: testDay, Base: "EUR", Quote: "USD", Amount: 100}
	_, err := p.GetRate(context.Background(), q)
	require.NoError(t, err)
	_, err = p.GetRate(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, transport.calls, "repeat lookups at the same amount hit the cache")

	q.Amount = 250
	_, err = p.GetRate(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, transport.calls, "a different amount is a different quote")
}

func TestProvider_SameCurrencyShortCircuit(t *testing.T) {
	transport := &MockCalculatorTransport{}
	p := NewProvider(transport, mapCache(), logger.NewNop())

	rate, err := p.GetRate(context.Background(), model.RateQuery{Date: testDay, Base: "USD", Quote: "USD", Amount: 100})

	require.NoError(t, err)
	assert.Equal(t, 1.0, rate.Value)
	assert.Zero(t, transport.calls)
}

func TestProvider_TransportFailurePropagates(t *testing.T) {
	transport := &MockCalculatorTransport{
		FetchConversionFunc: func(ctx context.Context, date time.Time, base, quote model.Currency, amount float64) (json.RawMessage, error) {
			return nil, model.ErrUpstream
		},
	}
	p := NewProvider(transport, mapCache(), logger.NewNop())

	_, err := p.GetRate(context.Background(), model.RateQuery{Date: testDay, Base: "EUR", Quote: "USD", Amount: 100})

	require.ErrorIs(t, err, model.ErrUpstream)
}
