package eventmodels

import "time"

type StockTickItemDTO struct {
	Symbol    string  `json:"symbol"`
	LastPrice float64 `json:"last"`
	Volume    float64 `json:"volume"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Ask       float64 `json:"ask"`
	Bid       float64 `json:"bid"`
}

// MidPrice is the bid/ask midpoint, falling back to the last trade when one
// side of the book is empty.
func (d *StockTickItemDTO) MidPrice() float64 {
	if d.Bid > 0 && d.Ask > 0 {
		return (d.Bid + d.Ask) / 2
	}

	return d.LastPrice
}

func (d *StockTickItemDTO) ToMarketState(riskFreeRate, dividendYield float64, now time.Time) MarketState {
	return MarketState{
		SpotPrice:     d.MidPrice(),
		RiskFreeRate:  riskFreeRate,
		DividendYield: dividendYield,
		Timestamp:     now,
	}
}

type StockTickDTO struct {
	Quotes struct {
		Tick StockTickItemDTO `json:"quote"`
	} `json:"quotes"`
}
