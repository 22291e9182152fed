package eventmodels

// AnalyticsRow is the flat CSV representation of one solved contract. Greeks
// columns are zero when the solve did not converge; the converged column
// tells the two cases apart.
type AnalyticsRow struct {
	Ticker            string  `csv:"ticker"`
	Symbol            string  `csv:"contract_symbol"`
	SpotPrice         float64 `csv:"S"`
	Strike            float64 `csv:"K"`
	TimeToExpiry      float64 `csv:"T"`
	OptionType        string  `csv:"type"`
	MarketPrice       float64 `csv:"market_price"`
	ImpliedVolatility float64 `csv:"calc_iv"`
	Converged         bool    `csv:"converged"`
	Iterations        int     `csv:"iterations"`
	Residual          float64 `csv:"residual"`
	Delta             float64 `csv:"delta"`
	Gamma             float64 `csv:"gamma"`
	Vega              float64 `csv:"vega"`
	Theta             float64 `csv:"theta"`
}

func NewAnalyticsRow(item ChainAnalyticsItem) AnalyticsRow {
	row := AnalyticsRow{
		Ticker:            string(item.Quote.Spec.Underlying),
		Symbol:            item.Quote.Symbol,
		SpotPrice:         item.Quote.Market.SpotPrice,
		Strike:            item.Quote.Spec.Strike,
		TimeToExpiry:      item.Quote.Spec.TimeToExpiry,
		OptionType:        string(item.Quote.Spec.OptionType),
		MarketPrice:       item.Quote.MarketPrice,
		ImpliedVolatility: item.IV.ImpliedVolatility,
		Converged:         item.IV.Converged,
		Iterations:        item.IV.Iterations,
		Residual:          item.IV.Residual,
	}

	if item.Greeks != nil {
		row.Delta = item.Greeks.Delta
		row.Gamma = item.Greeks.Gamma
		row.Vega = item.Greeks.Vega
		row.Theta = item.Greeks.Theta
	}

	return row
}
