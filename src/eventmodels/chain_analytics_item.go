package eventmodels

// ChainAnalyticsItem is the per-contract output of a batch run: the source
// quote, the solved implied volatility and, when the solve converged, the
// Greeks evaluated at that volatility.
type ChainAnalyticsItem struct {
	Quote  OptionQuote             `json:"quote"`
	IV     ImpliedVolatilityResult `json:"iv"`
	Greeks *PricingResult          `json:"greeks,omitempty"`
}
