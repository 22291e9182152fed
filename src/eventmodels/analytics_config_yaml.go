package eventmodels

import (
	"fmt"
	"strings"
)

type AnalyticsConfigYAML struct {
	Symbols []SymbolYAML `yaml:"symbols"`
	Solver  SolverYAML   `yaml:"solver"`
	Lattice LatticeYAML  `yaml:"lattice"`
	Surface SurfaceYAML  `yaml:"surface"`
	Batch   BatchYAML    `yaml:"batch"`
}

type SymbolYAML struct {
	Symbol            string  `yaml:"symbol"`
	ExpirationsInDays []int   `yaml:"expirationsInDays"`
	MaxNoOfStrikes    int     `yaml:"maxNoOfStrikes"`
	DividendYield     float64 `yaml:"dividendYield"`
}

type SolverYAML struct {
	InitialGuess   float64 `yaml:"initialGuess"`
	Tolerance      float64 `yaml:"tolerance"`
	SigmaTolerance float64 `yaml:"sigmaTolerance"`
	MaxIterations  int     `yaml:"maxIterations"`
	SigmaMin       float64 `yaml:"sigmaMin"`
	SigmaMax       float64 `yaml:"sigmaMax"`
}

type LatticeYAML struct {
	Steps int `yaml:"steps"`
}

type SurfaceYAML struct {
	MoneynessBand       float64 `yaml:"moneynessBand"`
	IncludeNonConverged bool    `yaml:"includeNonConverged"`
}

type BatchYAML struct {
	MaxWorkers int `yaml:"maxWorkers"`
}

func (c *AnalyticsConfigYAML) GetSymbol(symbol StockSymbol) (*SymbolYAML, error) {
	sym1 := strings.ToLower(string(symbol))
	for _, s := range c.Symbols {
		sym2 := strings.ToLower(s.Symbol)
		if sym1 == sym2 {
			return &s, nil
		}
	}

	return nil, fmt.Errorf("AnalyticsConfigYAML: symbol not found")
}
