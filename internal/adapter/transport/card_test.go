package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/logger"
)

func newCardServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestMastercardClient_FetchSettlementRates(t *testing.T) {
	doc := `{"data":[{"settlementCurrency":"USD","rates":[{"currency":"JPY","variancePct":2.5}]}]}`

	var gotPath, gotDate string
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotDate = r.URL.Path, r.URL.Query().Get("date")
		w.Write([]byte(doc))
	})
	client := NewMastercardClient(srv.URL, srv.Client(), logger.NewNop())

	raw, err := client.FetchSettlementRates(context.Background(), testDay, "")

	require.NoError(t, err)
	assert.Equal(t, "/settlement/rates", gotPath)
	assert.Equal(t, "2024-03-15", gotDate)
	assert.JSONEq(t, doc, string(raw), "the raw document passes through untouched")
}

func TestMastercardClient_RegionalMarketPath(t *testing.T) {
	var gotPath string
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":[]}`))
	})
	client := NewMastercardClient(srv.URL, srv.Client(), logger.NewNop())

	_, err := client.FetchSettlementRates(context.Background(), testDay, "AU")

	require.NoError(t, err)
	assert.Equal(t, "/settlement/rates/market/AU", gotPath)
}

func TestMastercardClient_UpstreamFailure(t *testing.T) {
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	client := NewMastercardClient(srv.URL, srv.Client(), logger.NewNop())

	_, err := client.FetchSettlementRates(context.Background(), testDay, "")

	require.ErrorIs(t, err, model.ErrUpstream)
}

func TestVisaClient_FetchConversion(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"from":   r.URL.Query().Get("from"),
			"to":     r.URL.Query().Get("to"),
			"amount": r.URL.Query().Get("amount"),
			"date":   r.URL.Query().Get("date"),
		}
		w.Write([]byte(`{"convertedAmount":"107.50","fxRate":"1.075000"}`))
	})
	client := NewVisaClient(srv.URL, srv.Client(), logger.NewNop())

	raw, err := client.FetchConversion(context.Background(), testDay, "EUR", "USD", 2.5)

	require.NoError(t, err)
	assert.Equal(t, "/calculator", gotPath)
	assert.Equal(t, map[string]string{
		"from":   "EUR",
		"to":     "USD",
		"amount": "2.5",
		"date":   "2024-03-15",
	}, gotQuery)
	assert.Contains(t, string(raw), "107.50")
}

func TestVisaClient_UpstreamFailure(t *testing.T) {
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	client := NewVisaClient(srv.URL, srv.Client(), logger.NewNop())

	_, err := client.FetchConversion(context.Background(), testDay, "EUR", "USD", 100)

	require.ErrorIs(t, err, model.ErrUpstream)
}

func TestAmexClient_FetchConversion(t *testing.T) {
	var gotPath, gotAmount string
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAmount = r.URL.Path, r.URL.Query().Get("amount")
		w.Write([]byte(`{"convertedWithFee": 215.0}`))
	})
	client := NewAmexClient(srv.URL, srv.Client(), logger.NewNop())

	raw, err := client.FetchConversion(context.Background(), testDay, "EUR", "USD", 200)

	require.NoError(t, err)
	assert.Equal(t, "/convert", gotPath)
	assert.Equal(t, "200", gotAmount)
	assert.Contains(t, string(raw), "convertedWithFee")
}

func TestAmexClient_UpstreamFailure(t *testing.T) {
	srv := newCardServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	client := NewAmexClient(srv.URL, srv.Client(), logger.NewNop())

	_, err := client.FetchConversion(context.Background(), testDay, "EUR", "USD", 200)

	require.ErrorIs(t, err, model.ErrUpstream)
}
