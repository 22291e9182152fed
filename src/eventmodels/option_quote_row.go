package eventmodels

import (
	"fmt"
	"time"
)

// OptionQuoteRow is the flat CSV representation of an OptionQuote, one row
// per contract, as written by the pipeline and read back by the analysis
// commands.
type OptionQuoteRow struct {
	Ticker        string  `csv:"ticker"`
	Symbol        string  `csv:"contract_symbol"`
	SpotPrice     float64 `csv:"S"`
	Strike        float64 `csv:"K"`
	TimeToExpiry  float64 `csv:"T"`
	RiskFreeRate  float64 `csv:"r"`
	DividendYield float64 `csv:"q"`
	OptionType    string  `csv:"type"`
	ExerciseStyle string  `csv:"exercise_style"`
	MarketPrice   float64 `csv:"market_price"`
	Expiration    string  `csv:"expiration"`
	FetchedAt     string  `csv:"fetched_at"`
}

func NewOptionQuoteRow(q OptionQuote) OptionQuoteRow {
	return OptionQuoteRow{
		Ticker:        string(q.Spec.Underlying),
		Symbol:        q.Symbol,
		SpotPrice:     q.Market.SpotPrice,
		Strike:        q.Spec.Strike,
		TimeToExpiry:  q.Spec.TimeToExpiry,
		RiskFreeRate:  q.Market.RiskFreeRate,
		DividendYield: q.Market.DividendYield,
		OptionType:    string(q.Spec.OptionType),
		ExerciseStyle: string(q.Spec.ExerciseStyle),
		MarketPrice:   q.MarketPrice,
		Expiration:    q.Spec.Expiration.Format("2006-01-02"),
		FetchedAt:     q.Market.Timestamp.Format(time.RFC3339),
	}
}

func (r OptionQuoteRow) ToModel() (OptionQuote, error) {
	expiration, err := time.Parse("2006-01-02", r.Expiration)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("OptionQuoteRow: ToModel: failed to parse expiration %s: %w", r.Expiration, err)
	}

	fetchedAt, err := time.Parse(time.RFC3339, r.FetchedAt)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("OptionQuoteRow: ToModel: failed to parse fetched_at %s: %w", r.FetchedAt, err)
	}

	quote := OptionQuote{
		Symbol:      r.Symbol,
		MarketPrice: r.MarketPrice,
		Spec: OptionContractSpec{
			Underlying:    NewStockSymbol(r.Ticker),
			Strike:        r.Strike,
			TimeToExpiry:  r.TimeToExpiry,
			OptionType:    OptionType(r.OptionType),
			ExerciseStyle: ExerciseStyle(r.ExerciseStyle),
			Expiration:    expiration,
		},
		Market: MarketState{
			SpotPrice:     r.SpotPrice,
			RiskFreeRate:  r.RiskFreeRate,
			DividendYield: r.DividendYield,
			Timestamp:     fetchedAt,
		},
	}

	if err := quote.Validate(); err != nil {
		return OptionQuote{}, fmt.Errorf("OptionQuoteRow: ToModel: %w", err)
	}

	return quote, nil
}
