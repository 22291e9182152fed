package pricing

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

const equalityThreshold = 1e-4

func newTestSpec(optionType eventmodels.OptionType, strike, timeToExpiry float64) eventmodels.OptionContractSpec {
	return eventmodels.OptionContractSpec{
		Underlying:    eventmodels.NewStockSymbol("TEST"),
		Strike:        strike,
		TimeToExpiry:  timeToExpiry,
		OptionType:    optionType,
		ExerciseStyle: eventmodels.European,
		Expiration:    time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newTestMarket(spot, rate, dividendYield float64) eventmodels.MarketState {
	return eventmodels.MarketState{
		SpotPrice:     spot,
		RiskFreeRate:  rate,
		DividendYield: dividendYield,
		Timestamp:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestBlackScholesPrice(t *testing.T) {
	model := NewBlackScholesModel()
	market := newTestMarket(100, 0.05, 0)
	sigma := 0.2

	t.Run("reference call price", func(t *testing.T) {
		// textbook values for S=100, K=100, T=1, r=0.05, sigma=0.2
		price, err := model.Price(newTestSpec(eventmodels.Call, 100, 1), market, sigma)
		assert.NoError(t, err)
		assert.Less(t, math.Abs(price-10.4506), equalityThreshold)
	})

	t.Run("reference put price", func(t *testing.T) {
		price, err := model.Price(newTestSpec(eventmodels.Put, 100, 1), market, sigma)
		assert.NoError(t, err)
		assert.Less(t, math.Abs(price-5.5735), equalityThreshold)
	})

	t.Run("put call parity", func(t *testing.T) {
		for _, q := range []float64{0, 0.015, 0.03} {
			m := newTestMarket(105, 0.04, q)

			call, err := model.Price(newTestSpec(eventmodels.Call, 95, 0.75), m, 0.3)
			assert.NoError(t, err)

			put, err := model.Price(newTestSpec(eventmodels.Put, 95, 0.75), m, 0.3)
			assert.NoError(t, err)

			parity := m.SpotPrice*math.Exp(-q*0.75) - 95*math.Exp(-m.RiskFreeRate*0.75)
			assert.Less(t, math.Abs(call-put-parity), 1e-8)
		}
	})

	t.Run("prices respect the no-arbitrage floor", func(t *testing.T) {
		for _, q := range []float64{0, 0.02, 0.05} {
			for _, timeToExpiry := range []float64{0.05, 0.5, 2} {
				for _, strike := range []float64{60, 90, 100, 110, 150} {
					m := newTestMarket(100, 0.05, q)

					discS := m.SpotPrice * math.Exp(-q*timeToExpiry)
					discK := strike * math.Exp(-m.RiskFreeRate*timeToExpiry)

					call, err := model.Price(newTestSpec(eventmodels.Call, strike, timeToExpiry), m, sigma)
					assert.NoError(t, err)
					assert.GreaterOrEqual(t, call, math.Max(discS-discK, 0))

					put, err := model.Price(newTestSpec(eventmodels.Put, strike, timeToExpiry), m, sigma)
					assert.NoError(t, err)
					assert.GreaterOrEqual(t, put, math.Max(discK-discS, 0))
				}
			}
		}
	})

	t.Run("prices are non-negative", func(t *testing.T) {
		for _, strike := range []float64{50, 100, 200} {
			for _, optionType := range []eventmodels.OptionType{eventmodels.Call, eventmodels.Put} {
				price, err := model.Price(newTestSpec(optionType, strike, 0.5), market, sigma)
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, price, 0.0)
			}
		}
	})

	t.Run("intrinsic value at expiry", func(t *testing.T) {
		price, err := model.Price(newTestSpec(eventmodels.Call, 90, 0), market, sigma)
		assert.NoError(t, err)
		assert.Equal(t, 10.0, price)

		price, err = model.Price(newTestSpec(eventmodels.Put, 90, 0), market, sigma)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, price)
	})

	t.Run("discounted forward intrinsic at zero volatility", func(t *testing.T) {
		spec := newTestSpec(eventmodels.Call, 90, 1)

		price, err := model.Price(spec, market, 0)
		assert.NoError(t, err)

		expected := 100.0 - 90*math.Exp(-0.05)
		assert.Less(t, math.Abs(price-expected), 1e-10)

		otm := newTestSpec(eventmodels.Put, 90, 1)
		price, err = model.Price(otm, market, 0)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, price)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := model.Price(newTestSpec(eventmodels.Call, 100, 1), market, -0.1)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, eventmodels.InvalidInputErr))

		_, err = model.Price(newTestSpec(eventmodels.Call, 0, 1), market, 0.2)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, eventmodels.InvalidInputErr))

		_, err = model.Price(newTestSpec("callx", 100, 1), market, 0.2)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, eventmodels.InvalidInputErr))
	})
}

func TestBlackScholesGreeks(t *testing.T) {
	model := NewBlackScholesModel()
	market := newTestMarket(100, 0.05, 0)
	sigma := 0.2

	t.Run("reference call greeks", func(t *testing.T) {
		greeks, err := model.Greeks(newTestSpec(eventmodels.Call, 100, 1), market, sigma)
		assert.NoError(t, err)

		assert.Less(t, math.Abs(greeks.Price-10.4506), equalityThreshold)
		assert.Less(t, math.Abs(greeks.Delta-0.6368), equalityThreshold)
		assert.Less(t, math.Abs(greeks.Gamma-0.018762), equalityThreshold)
		assert.Less(t, math.Abs(greeks.Vega-37.5240), equalityThreshold)
		assert.Less(t, math.Abs(greeks.Theta-(-6.4140)), equalityThreshold)
	})

	t.Run("delta bounds", func(t *testing.T) {
		for _, strike := range []float64{60, 100, 160} {
			call, err := model.Greeks(newTestSpec(eventmodels.Call, strike, 0.5), market, sigma)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, call.Delta, 0.0)
			assert.LessOrEqual(t, call.Delta, 1.0)

			put, err := model.Greeks(newTestSpec(eventmodels.Put, strike, 0.5), market, sigma)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, put.Delta, -1.0)
			assert.LessOrEqual(t, put.Delta, 0.0)

			// gamma and vega are shared between calls and puts
			assert.Less(t, math.Abs(call.Gamma-put.Gamma), 1e-12)
			assert.Less(t, math.Abs(call.Vega-put.Vega), 1e-12)
		}
	})

	t.Run("dividend yield lowers call delta", func(t *testing.T) {
		spec := newTestSpec(eventmodels.Call, 100, 1)

		noDiv, err := model.Greeks(spec, newTestMarket(100, 0.05, 0), sigma)
		assert.NoError(t, err)

		withDiv, err := model.Greeks(spec, newTestMarket(100, 0.05, 0.03), sigma)
		assert.NoError(t, err)

		assert.Less(t, withDiv.Delta, noDiv.Delta)
	})

	t.Run("degenerate inputs yield price only", func(t *testing.T) {
		greeks, err := model.Greeks(newTestSpec(eventmodels.Call, 90, 0), market, sigma)
		assert.NoError(t, err)
		assert.Equal(t, 10.0, greeks.Price)
		assert.Equal(t, 0.0, greeks.Delta)
		assert.Equal(t, 0.0, greeks.Vega)
	})
}
