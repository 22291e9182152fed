package pricing

import (
	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

// Model prices a contract and computes its sensitivities for a given
// volatility. The implied volatility solver and the surface builders are
// written against this interface so a model can be swapped without touching
// callers.
type Model interface {
	Price(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (float64, error)
	Greeks(spec eventmodels.OptionContractSpec, market eventmodels.MarketState, sigma float64) (eventmodels.PricingResult, error)
}

// ModelForStyle picks the closed form for European exercise and the lattice
// for American, where early exercise matters.
func ModelForStyle(style eventmodels.ExerciseStyle, latticeSteps int) Model {
	if style == eventmodels.American {
		return NewBinomialModel(latticeSteps)
	}

	return NewBlackScholesModel()
}
