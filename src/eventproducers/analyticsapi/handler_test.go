package analyticsapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

func newTestRouter(items []eventmodels.ChainAnalyticsItem) *mux.Router {
	server := NewServer(items, 200, volatility.DefaultSolverOptions())

	router := mux.NewRouter()
	server.SetupHandler(router)

	return router
}

func newHandlerQuote(strike float64, marketPrice float64) eventmodels.OptionQuote {
	return eventmodels.OptionQuote{
		Symbol:      "SPY260320C00500000",
		MarketPrice: marketPrice,
		Spec: eventmodels.OptionContractSpec{
			Underlying:    eventmodels.NewStockSymbol("SPY"),
			Strike:        strike,
			TimeToExpiry:  0.25,
			OptionType:    eventmodels.Call,
			ExerciseStyle: eventmodels.European,
			Expiration:    time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		Market: eventmodels.MarketState{
			SpotPrice:    500,
			RiskFreeRate: 0.045,
			Timestamp:    time.Date(2026, 2, 2, 15, 30, 0, 0, time.UTC),
		},
	}
}

func TestPriceHandler(t *testing.T) {
	router := newTestRouter(nil)

	t.Run("prices a valid request", func(t *testing.T) {
		quote := newHandlerQuote(500, 0)

		body, err := json.Marshal(PriceRequest{
			Spec:       quote.Spec,
			Market:     quote.Market,
			Volatility: 0.2,
		})
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/analytics/price", bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var result eventmodels.PricingResult
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&result))
		assert.Greater(t, result.Price, 0.0)
		assert.Greater(t, result.Delta, 0.0)
		assert.Greater(t, result.Vega, 0.0)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/analytics/price", bytes.NewReader([]byte("{")))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects invalid pricing inputs", func(t *testing.T) {
		quote := newHandlerQuote(0, 0)

		body, err := json.Marshal(PriceRequest{
			Spec:       quote.Spec,
			Market:     quote.Market,
			Volatility: 0.2,
		})
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/analytics/price", bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestIvHandler(t *testing.T) {
	router := newTestRouter(nil)

	t.Run("solves a quoted contract", func(t *testing.T) {
		quote := newHandlerQuote(500, 22.5)

		body, err := json.Marshal(quote)
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/analytics/iv", bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var result eventmodels.ImpliedVolatilityResult
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&result))
		assert.True(t, result.Converged)
		assert.Greater(t, result.ImpliedVolatility, 0.0)
	})
}

func TestSurfaceHandlers(t *testing.T) {
	items := []eventmodels.ChainAnalyticsItem{
		{
			Quote: newHandlerQuote(490, 26.0),
			IV:    eventmodels.ImpliedVolatilityResult{ImpliedVolatility: 0.22, Converged: true},
		},
		{
			Quote: newHandlerQuote(510, 16.0),
			IV:    eventmodels.ImpliedVolatilityResult{ImpliedVolatility: 0.19, Converged: true},
		},
	}

	router := newTestRouter(items)

	t.Run("smile for a loaded expiration", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/analytics/surface/smile?expiration=2026-03-20", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var series eventmodels.SurfaceSeries
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&series))
		assert.Len(t, series.Points, 2)
		assert.Equal(t, 490.0, series.Points[0].X)
	})

	t.Run("smile filtered to one option type", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/analytics/surface/smile?expiration=2026-03-20&option_type=put", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		req = httptest.NewRequest("GET", "/analytics/surface/smile?expiration=2026-03-20&option_type=call", nil)
		recorder = httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var series eventmodels.SurfaceSeries
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&series))
		assert.Len(t, series.Points, 2)
	})

	t.Run("smile rejects an unknown option type", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/analytics/surface/smile?expiration=2026-03-20&option_type=straddle", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("smile without data is not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/analytics/surface/smile?expiration=2030-01-01", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("smile requires an expiration", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/analytics/surface/smile", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("term structure with the default band", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/analytics/surface/term", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var series eventmodels.SurfaceSeries
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&series))
		assert.Len(t, series.Points, 1)
	})
}
