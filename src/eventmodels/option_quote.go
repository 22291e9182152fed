package eventmodels

import "fmt"

// OptionQuote pairs a contract with the market snapshot and the price it was
// observed at. Quotes are produced by the market data layer and consumed
// read-only by the analytics engine.
type OptionQuote struct {
	Symbol      string             `json:"symbol"`
	MarketPrice float64            `json:"market_price"`
	Spec        OptionContractSpec `json:"spec"`
	Market      MarketState        `json:"market"`
}

func (q OptionQuote) Validate() error {
	if q.MarketPrice < 0 {
		return fmt.Errorf("OptionQuote: Validate: market price must be non-negative, got %v: %w", q.MarketPrice, InvalidInputErr)
	}

	if err := q.Spec.Validate(); err != nil {
		return fmt.Errorf("OptionQuote: Validate: %w", err)
	}

	if err := q.Market.Validate(); err != nil {
		return fmt.Errorf("OptionQuote: Validate: %w", err)
	}

	return nil
}
