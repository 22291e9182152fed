package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

const DefaultLatticeSteps = 500

const (
	spotBumpFraction = 1e-3
	sigmaBump        = 1e-3
	thetaBumpInYears = 1.0 / 365.25
)

// BinomialModel prices on a Cox-Ross-Rubinstein recombining lattice. It
// handles American early exercise; with a European spec it converges to the
// Black-Scholes-Merton price as Steps grows.
type BinomialModel struct {
	Steps int
}

func NewBinomialModel(steps int) *BinomialModel {
	if steps < 1 {
		steps = DefaultLatticeSteps
	}

	return &BinomialModel{Steps: steps}
}

func (m *BinomialModel) Price(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (float64, error) {
	if err := validatePricingInputs(spec, market, sigma); err != nil {
		return 0, fmt.Errorf("BinomialModel: Price: %w", err)
	}

	if m.Steps < 1 {
		return 0, fmt.Errorf("BinomialModel: Price: steps must be at least 1, got %d: %w", m.Steps, eventmodels.InvalidInputErr)
	}

	if degenerate, price := degeneratePrice(spec, market, sigma); degenerate {
		return price, nil
	}

	S := market.SpotPrice
	T := spec.TimeToExpiry
	r := market.RiskFreeRate
	q := market.DividendYield
	N := m.Steps

	dt := T / float64(N)
	u := math.Exp(sigma * math.Sqrt(dt))
	d := 1 / u
	p := (math.Exp((r-q)*dt) - d) / (u - d)

	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("BinomialModel: Price: risk-neutral probability %v outside (0,1), drift too large for the step size: %w", p, eventmodels.InvalidInputErr)
	}

	discount := math.Exp(-r * dt)

	// Terminal payoffs at the N+1 leaves: spot S*u^j*d^(N-j) for j=0..N.
	values := make([]float64, N+1)
	for j := 0; j <= N; j++ {
		spot := S * math.Pow(u, float64(j)) * math.Pow(d, float64(N-j))
		values[j] = spec.IntrinsicValue(spot)
	}

	american := spec.ExerciseStyle == eventmodels.American

	for step := N - 1; step >= 0; step-- {
		for j := 0; j <= step; j++ {
			continuation := discount * (p*values[j+1] + (1-p)*values[j])

			if american {
				spot := S * math.Pow(u, float64(j)) * math.Pow(d, float64(step-j))
				values[j] = math.Max(continuation, spec.IntrinsicValue(spot))
			} else {
				values[j] = continuation
			}
		}
	}

	return values[0], nil
}

// Greeks approximates sensitivities by central finite differences, bumping
// spot and volatility and re-pricing on the same lattice settings. Unlike the
// closed-form model these are approximations whose accuracy depends on Steps.
func (m *BinomialModel) Greeks(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (eventmodels.PricingResult, error) {
	price, err := m.Price(spec, market, sigma)
	if err != nil {
		return eventmodels.PricingResult{}, fmt.Errorf("BinomialModel: Greeks: %w", err)
	}

	if degenerate, _ := degeneratePrice(spec, market, sigma); degenerate {
		return eventmodels.PricingResult{Price: price}, nil
	}

	result := eventmodels.PricingResult{Price: price}

	dS := market.SpotPrice * spotBumpFraction

	upMarket := market
	upMarket.SpotPrice = market.SpotPrice + dS
	priceUp, err := m.Price(spec, upMarket, sigma)
	if err != nil {
		return eventmodels.PricingResult{}, fmt.Errorf("BinomialModel: Greeks: spot up bump: %w", err)
	}

	downMarket := market
	downMarket.SpotPrice = market.SpotPrice - dS
	priceDown, err := m.Price(spec, downMarket, sigma)
	if err != nil {
		return eventmodels.PricingResult{}, fmt.Errorf("BinomialModel: Greeks: spot down bump: %w", err)
	}

	result.Delta = (priceUp - priceDown) / (2 * dS)
	result.Gamma = (priceUp - 2*price + priceDown) / (dS * dS)

	sigmaUp, err := m.Price(spec, market, sigma+sigmaBump)
	if err != nil {
		return eventmodels.PricingResult{}, fmt.Errorf("BinomialModel: Greeks: sigma up bump: %w", err)
	}

	sigmaLow := math.Max(sigma-sigmaBump, 0)
	sigmaDown, err := m.Price(spec, market, sigmaLow)
	if err != nil {
		return eventmodels.PricingResult{}, fmt.Errorf("BinomialModel: Greeks: sigma down bump: %w", err)
	}

	result.Vega = (sigmaUp - sigmaDown) / (sigma + sigmaBump - sigmaLow)

	dT := math.Min(thetaBumpInYears, spec.TimeToExpiry/2)
	if dT > 0 {
		shorterSpec := spec
		shorterSpec.TimeToExpiry = spec.TimeToExpiry - dT
		priceLater, err := m.Price(shorterSpec, market, sigma)
		if err != nil {
			return eventmodels.PricingResult{}, fmt.Errorf("BinomialModel: Greeks: time bump: %w", err)
		}

		result.Theta = (priceLater - price) / dT
	}

	return result, nil
}
