package eventservices

import (
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

const fallbackRiskFreeRate = 0.04

// FetchRiskFreeRate uses the 10-year treasury yield index as a proxy for the
// continuously compounded risk-free rate. The quote endpoint reports the
// yield in percent. A fetch failure falls back to a flat default so the
// pipeline can keep running on a degraded input.
func FetchRiskFreeRate(url, bearerToken string) float64 {
	tick, err := FetchStockTicks(eventmodels.NewStockSymbol("TNX"), url, bearerToken)
	if err != nil {
		log.Warnf("FetchRiskFreeRate: falling back to %.2f: %v", fallbackRiskFreeRate, err)
		return fallbackRiskFreeRate
	}

	if tick.LastPrice <= 0 {
		log.Warnf("FetchRiskFreeRate: empty yield quote, falling back to %.2f", fallbackRiskFreeRate)
		return fallbackRiskFreeRate
	}

	return tick.LastPrice / 100
}
