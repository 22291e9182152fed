package eventmodels

import (
	"fmt"
	"time"
)

// MarketState is a snapshot of the inputs shared by every contract on an
// underlying: spot, the continuously compounded risk-free rate and the
// continuous dividend yield, as of Timestamp.
type MarketState struct {
	SpotPrice     float64   `json:"spot_price"`
	RiskFreeRate  float64   `json:"risk_free_rate"`
	DividendYield float64   `json:"dividend_yield"`
	Timestamp     time.Time `json:"timestamp"`
}

func (m MarketState) Validate() error {
	if m.SpotPrice <= 0 {
		return fmt.Errorf("MarketState: Validate: spot price must be positive, got %v: %w", m.SpotPrice, InvalidInputErr)
	}

	return nil
}
