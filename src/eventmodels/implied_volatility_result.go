package eventmodels

// ImpliedVolatilityResult is the outcome of a single solve. A non-converged
// result is a valid value: ImpliedVolatility holds the best estimate found
// and Residual the remaining pricing error, so batch runs can continue past
// bad quotes and callers can decide what to discard.
type ImpliedVolatilityResult struct {
	ImpliedVolatility float64 `json:"implied_volatility"`
	Iterations        int     `json:"iterations"`
	Converged         bool    `json:"converged"`
	Residual          float64 `json:"residual"`
}
