package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/logger"
)

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newReferenceServer(t *testing.T, handler http.HandlerFunc) *ReferenceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewReferenceClient(srv.URL, srv.Client(), logger.NewNop())
}

func TestReferenceClient_FetchRates(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query()
		w.Write([]byte(`{"base":"EUR","date":"2024-03-15","rates":{"USD":1.0825,"JPY":161.2}}`))
	})

	rates, err := client.FetchRates(context.Background(), testDay, "EUR", []model.Currency{"USD", "JPY"})

	require.NoError(t, err)
	assert.Equal(t, "/2024-03-15", gotPath)
	assert.Equal(t, "EUR", gotQuery.Get("base"))
	assert.Equal(t, "USD,JPY", gotQuery.Get("symbols"))
	assert.Equal(t, map[model.Currency]float64{"USD": 1.0825, "JPY": 161.2}, rates)
}

func TestReferenceClient_FetchRates_NoFixingForDate(t *testing.T) {
	client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.FetchRates(context.Background(), testDay, "EUR", []model.Currency{"USD"})

	require.ErrorIs(t, err, model.ErrDateNotFound)
}

func TestReferenceClient_FetchLatestRates(t *testing.T) {
	var gotPath string
	client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"base":"EUR","date":"2024-03-14","rates":{"USD":1.0819}}`))
	})

	rates, err := client.FetchLatestRates(context.Background(), "EUR", []model.Currency{"USD"})

	require.NoError(t, err)
	assert.Equal(t, "/latest", gotPath)
	assert.Equal(t, 1.0819, rates["USD"])
}

func TestReferenceClient_LatestNotFoundIsUpstream(t *testing.T) {
	client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.FetchLatestRates(context.Background(), "EUR", []model.Currency{"USD"})

	// The latest form has no date to miss; a 404 there is a hard failure,
	// not a retryable gap.
	require.ErrorIs(t, err, model.ErrUpstream)
	assert.NotErrorIs(t, err, model.ErrDateNotFound)
}

func TestReferenceClient_FetchRateRange(t *testing.T) {
	var gotPath string
	client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{
			"base": "EUR",
			"start_date": "2024-03-01",
			"end_date": "2024-03-05",
			"rates": {
				"2024-03-01": {"USD": 1.10},
				"2024-03-04": {"USD": 1.12}
			}
		}`))
	})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	byDay, err := client.FetchRateRange(context.Background(), start, end, "EUR", []model.Currency{"USD"})

	require.NoError(t, err)
	assert.Equal(t, "/2024-03-01..2024-03-05", gotPath)
	require.Len(t, byDay, 2)
	assert.Equal(t, 1.10, byDay["2024-03-01"]["USD"])
	assert.Equal(t, 1.12, byDay["2024-03-04"]["USD"])
}

func TestReferenceClient_Failures(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		body          string
		expectedError error
	}{
		{
			name:          "Server error",
			status:        http.StatusInternalServerError,
			body:          "boom",
			expectedError: model.ErrUpstream,
		},
		{
			name:          "Malformed payload",
			status:        http.StatusOK,
			body:          `{"rates": [1,2,3]}`,
			expectedError: model.ErrParse,
		},
		{
			name:          "Payload without rates",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-15","rates":{}}`,
			expectedError: model.ErrParse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.FetchRates(context.Background(), testDay, "EUR", []model.Currency{"USD"})

			require.ErrorIs(t, err, tc.expectedError)
		})
	}
}

func TestReferenceClient_RangeWithoutRates(t *testing.T) {
	client := newReferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"EUR"}`))
	})

	_, err := client.FetchRateRange(context.Background(), testDay, testDay.AddDate(0, 0, 1), "EUR", []model.Currency{"USD"})

	require.ErrorIs(t, err, model.ErrParse)
}
