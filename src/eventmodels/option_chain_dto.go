package eventmodels

import (
	"fmt"
	"time"
)

// OptionChainTickDTO is one contract of a chain response from the market
// data provider.
type OptionChainTickDTO struct {
	Symbol         string  `json:"symbol"`
	Description    string  `json:"description"`
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	Last           float64 `json:"last"`
	Volume         int     `json:"volume"`
	OpenInterest   int     `json:"open_interest"`
	Strike         float64 `json:"strike"`
	ContractSize   int     `json:"contract_size"`
	OptionType     string  `json:"option_type"`
	ExpirationDate string  `json:"expiration_date"`
	ExpirationType string  `json:"expiration_type"`
}

type OptionChainOptionsDTO struct {
	Option []*OptionChainTickDTO `json:"option"`
}

type OptionChainResponseDTO struct {
	Options OptionChainOptionsDTO `json:"options"`
}

// MidPrice is the bid/ask midpoint, falling back to the last trade when one
// side of the book is empty.
func (d *OptionChainTickDTO) MidPrice() float64 {
	if d.Bid > 0 && d.Ask > 0 {
		return (d.Bid + d.Ask) / 2
	}

	return d.Last
}

func (d *OptionChainTickDTO) ToModel(underlying StockSymbol, market MarketState, style ExerciseStyle, now time.Time) (OptionQuote, error) {
	expiration, err := time.Parse("2006-01-02", d.ExpirationDate)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("OptionChainTickDTO: ToModel: failed to parse expiration date %s: %w", d.ExpirationDate, err)
	}

	// Contracts settle at the end of the expiration day, so push the
	// boundary to the next day before computing the year fraction.
	timeToExpiry := expiration.AddDate(0, 0, 1).Sub(now).Seconds() / (365.25 * 24 * 60 * 60)

	quote := OptionQuote{
		Symbol:      d.Symbol,
		MarketPrice: d.MidPrice(),
		Spec: OptionContractSpec{
			Underlying:    underlying,
			Strike:        d.Strike,
			TimeToExpiry:  timeToExpiry,
			OptionType:    OptionType(d.OptionType),
			ExerciseStyle: style,
			Expiration:    expiration,
		},
		Market: market,
	}

	if err := quote.Validate(); err != nil {
		return OptionQuote{}, fmt.Errorf("OptionChainTickDTO: ToModel: %w", err)
	}

	return quote, nil
}

// ToOptionQuotes converts a chain response to validated quotes. Expired
// contracts are dropped; a malformed row fails the whole conversion.
func (dto *OptionChainResponseDTO) ToOptionQuotes(underlying StockSymbol, market MarketState, style ExerciseStyle, now time.Time) ([]OptionQuote, error) {
	var quotes []OptionQuote

	for _, tick := range dto.Options.Option {
		expiration, err := time.Parse("2006-01-02", tick.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("OptionChainResponseDTO: ToOptionQuotes: failed to parse expiration date %s: %w", tick.ExpirationDate, err)
		}

		if !expiration.AddDate(0, 0, 1).After(now) {
			continue
		}

		quote, err := tick.ToModel(underlying, market, style, now)
		if err != nil {
			return nil, fmt.Errorf("OptionChainResponseDTO: ToOptionQuotes: %w", err)
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}
