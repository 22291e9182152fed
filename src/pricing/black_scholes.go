package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

// BlackScholesModel is the closed-form Black-Scholes-Merton pricer with a
// continuous dividend yield. It is exact for European exercise only; pricing
// an American spec with it yields the European value, which callers may use
// as a reference baseline but not as the American premium.
type BlackScholesModel struct{}

func NewBlackScholesModel() *BlackScholesModel {
	return &BlackScholesModel{}
}

func (m *BlackScholesModel) Price(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (float64, error) {
	if err := validatePricingInputs(spec, market, sigma); err != nil {
		return 0, fmt.Errorf("BlackScholesModel: Price: %w", err)
	}

	if degenerate, price := degeneratePrice(spec, market, sigma); degenerate {
		return price, nil
	}

	S := market.SpotPrice
	K := spec.Strike
	T := spec.TimeToExpiry
	r := market.RiskFreeRate
	q := market.DividendYield

	d1, d2 := dValues(S, K, T, r, q, sigma)

	if spec.OptionType == eventmodels.Call {
		return S*math.Exp(-q*T)*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2), nil
	}

	return K*math.Exp(-r*T)*normCDF(-d2) - S*math.Exp(-q*T)*normCDF(-d1), nil
}

func (m *BlackScholesModel) Greeks(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (eventmodels.PricingResult, error) {
	price, err := m.Price(spec, market, sigma)
	if err != nil {
		return eventmodels.PricingResult{}, fmt.Errorf("BlackScholesModel: Greeks: %w", err)
	}

	if degenerate, _ := degeneratePrice(spec, market, sigma); degenerate {
		return eventmodels.PricingResult{Price: price}, nil
	}

	S := market.SpotPrice
	K := spec.Strike
	T := spec.TimeToExpiry
	r := market.RiskFreeRate
	q := market.DividendYield

	d1, d2 := dValues(S, K, T, r, q, sigma)

	sqrtT := math.Sqrt(T)
	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)
	pdfD1 := normPDF(d1)

	result := eventmodels.PricingResult{
		Price: price,
		Gamma: discQ * pdfD1 / (S * sigma * sqrtT),
		Vega:  S * discQ * pdfD1 * sqrtT,
	}

	if spec.OptionType == eventmodels.Call {
		result.Delta = discQ * normCDF(d1)
		result.Theta = -S*discQ*pdfD1*sigma/(2*sqrtT) - r*K*discR*normCDF(d2) + q*S*discQ*normCDF(d1)
	} else {
		result.Delta = discQ * (normCDF(d1) - 1)
		result.Theta = -S*discQ*pdfD1*sigma/(2*sqrtT) + r*K*discR*normCDF(-d2) - q*S*discQ*normCDF(-d1)
	}

	return result, nil
}

func dValues(S, K, T, r, q, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	return d1, d2
}

func validatePricingInputs(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	if err := market.Validate(); err != nil {
		return err
	}

	if sigma < 0 {
		return fmt.Errorf("volatility must be non-negative, got %v: %w", sigma, eventmodels.InvalidInputErr)
	}

	return nil
}

// degeneratePrice resolves the two edge cases that must never reach the d1/d2
// formulas: at expiry the contract is worth exactly its intrinsic value, and
// at zero volatility the terminal spot is deterministic, so the value is the
// discounted forward intrinsic value.
func degeneratePrice(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (bool, float64) {
	T := spec.TimeToExpiry

	if T == 0 {
		return true, spec.IntrinsicValue(market.SpotPrice)
	}

	if sigma == 0 {
		forward := market.SpotPrice * math.Exp(-market.DividendYield*T)
		strike := spec.Strike * math.Exp(-market.RiskFreeRate*T)

		if spec.OptionType == eventmodels.Call {
			return true, math.Max(forward-strike, 0)
		}

		return true, math.Max(strike-forward, 0)
	}

	return false, 0
}
