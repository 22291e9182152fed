package volatility

import (
	"fmt"
	"math"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/pricing"
)

type SolverOptions struct {
	InitialGuess   float64
	Tolerance      float64
	SigmaTolerance float64
	MaxIterations  int
	SigmaMin       float64
	SigmaMax       float64
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		InitialGuess:   0.5,
		Tolerance:      1e-8,
		SigmaTolerance: 1e-9,
		MaxIterations:  100,
		SigmaMin:       1e-6,
		SigmaMax:       5.0,
	}
}

func (o SolverOptions) Validate() error {
	if o.InitialGuess <= 0 || o.Tolerance <= 0 || o.SigmaTolerance <= 0 {
		return fmt.Errorf("SolverOptions: Validate: guess and tolerances must be positive: %w", eventmodels.InvalidInputErr)
	}

	if o.MaxIterations < 1 {
		return fmt.Errorf("SolverOptions: Validate: max iterations must be at least 1, got %d: %w", o.MaxIterations, eventmodels.InvalidInputErr)
	}

	if o.SigmaMin <= 0 || o.SigmaMax <= o.SigmaMin {
		return fmt.Errorf("SolverOptions: Validate: need 0 < sigmaMin < sigmaMax, got (%v, %v): %w", o.SigmaMin, o.SigmaMax, eventmodels.InvalidInputErr)
	}

	return nil
}

// Solve recovers the volatility that reprices the quote under the given
// model. Newton-Raphson with the model's Vega is tried first; when Vega
// vanishes or a step leaves the bracket, the solver falls back to bisection
// on (SigmaMin, SigmaMax), which converges whenever the market price is
// attainable inside the bracket. An unattainable price (below intrinsic or
// above the price at SigmaMax, i.e. a stale or arbitrage-violating quote)
// yields a non-converged result with its residual, never an error: batch
// runs must keep going past bad quotes.
func Solve(quote eventmodels.OptionQuote, model pricing.Model, opts SolverOptions) (eventmodels.ImpliedVolatilityResult, error) {
	if err := quote.Validate(); err != nil {
		return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("Solve: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("Solve: %w", err)
	}

	priceAt := func(sigma float64) (float64, error) {
		return model.Price(quote.Spec, quote.Market, sigma)
	}

	// The price is monotone increasing in sigma, so the bracket endpoints
	// bound the attainable price range.
	priceLow, err := priceAt(opts.SigmaMin)
	if err != nil {
		return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("Solve: price at lower bracket: %w", err)
	}

	priceHigh, err := priceAt(opts.SigmaMax)
	if err != nil {
		return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("Solve: price at upper bracket: %w", err)
	}

	if quote.MarketPrice < priceLow-opts.Tolerance {
		return eventmodels.ImpliedVolatilityResult{
			ImpliedVolatility: opts.SigmaMin,
			Converged:         false,
			Residual:          priceLow - quote.MarketPrice,
		}, nil
	}

	if quote.MarketPrice > priceHigh+opts.Tolerance {
		return eventmodels.ImpliedVolatilityResult{
			ImpliedVolatility: opts.SigmaMax,
			Converged:         false,
			Residual:          priceHigh - quote.MarketPrice,
		}, nil
	}

	sigma := clamp(opts.InitialGuess, opts.SigmaMin, opts.SigmaMax)
	iterations := 0
	bestSigma := sigma
	bestResidual := math.Inf(1)

	for iterations < opts.MaxIterations {
		iterations++

		greeks, err := model.Greeks(quote.Spec, quote.Market, sigma)
		if err != nil {
			return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("Solve: newton step %d: %w", iterations, err)
		}

		residual := greeks.Price - quote.MarketPrice
		if math.Abs(residual) < math.Abs(bestResidual) {
			bestResidual = residual
			bestSigma = sigma
		}

		if math.Abs(residual) < opts.Tolerance {
			return eventmodels.ImpliedVolatilityResult{
				ImpliedVolatility: sigma,
				Iterations:        iterations,
				Converged:         true,
				Residual:          residual,
			}, nil
		}

		if greeks.Vega < opts.Tolerance {
			return bisect(quote, model, opts, iterations, bestSigma, bestResidual)
		}

		next := sigma - residual/greeks.Vega
		if next <= opts.SigmaMin || next >= opts.SigmaMax {
			return bisect(quote, model, opts, iterations, bestSigma, bestResidual)
		}

		if math.Abs(next-sigma) < opts.SigmaTolerance {
			residualNext, err := priceAt(next)
			if err != nil {
				return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("Solve: converged step: %w", err)
			}

			return eventmodels.ImpliedVolatilityResult{
				ImpliedVolatility: next,
				Iterations:        iterations,
				Converged:         true,
				Residual:          residualNext - quote.MarketPrice,
			}, nil
		}

		sigma = next
	}

	return eventmodels.ImpliedVolatilityResult{
		ImpliedVolatility: bestSigma,
		Iterations:        iterations,
		Converged:         false,
		Residual:          bestResidual,
	}, nil
}

// bisect finishes a solve on the full bracket after Newton-Raphson has been
// abandoned. Iterations already spent by the Newton phase count against
// MaxIterations here too.
func bisect(quote eventmodels.OptionQuote, model pricing.Model, opts SolverOptions, iterations int, bestSigma, bestResidual float64) (eventmodels.ImpliedVolatilityResult, error) {
	low := opts.SigmaMin
	high := opts.SigmaMax

	for iterations < opts.MaxIterations {
		iterations++

		mid := (low + high) / 2

		price, err := model.Price(quote.Spec, quote.Market, mid)
		if err != nil {
			return eventmodels.ImpliedVolatilityResult{}, fmt.Errorf("bisect: step %d: %w", iterations, err)
		}

		residual := price - quote.MarketPrice
		if math.Abs(residual) < math.Abs(bestResidual) {
			bestResidual = residual
			bestSigma = mid
		}

		if math.Abs(residual) < opts.Tolerance || high-low < opts.SigmaTolerance {
			return eventmodels.ImpliedVolatilityResult{
				ImpliedVolatility: mid,
				Iterations:        iterations,
				Converged:         true,
				Residual:          residual,
			}, nil
		}

		if residual > 0 {
			high = mid
		} else {
			low = mid
		}
	}

	return eventmodels.ImpliedVolatilityResult{
		ImpliedVolatility: bestSigma,
		Iterations:        iterations,
		Converged:         false,
		Residual:          bestResidual,
	}, nil
}

func clamp(x, low, high float64) float64 {
	if x < low {
		return low
	}

	if x > high {
		return high
	}

	return x
}
