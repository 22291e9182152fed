package eventmodels

// PricingResult holds a theoretical price and its sensitivities. Theta is
// annualized; a more negative value means faster decay for a long position.
type PricingResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
}
