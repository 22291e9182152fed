package volatility

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

type SurfaceOptions struct {
	// IncludeNonConverged keeps failed solves in the series, degrading its
	// quality in exchange for completeness.
	IncludeNonConverged bool

	// OptionType restricts the series to calls or puts. Empty keeps both,
	// which in a smile merges two solves per strike.
	OptionType eventmodels.OptionType
}

// BuildSmile collects the implied volatilities for one expiration into a
// series keyed by strike, ascending.
func BuildSmile(items []eventmodels.ChainAnalyticsItem, expiration string, opts SurfaceOptions) (eventmodels.SurfaceSeries, error) {
	if opts.OptionType != "" {
		if err := opts.OptionType.Validate(); err != nil {
			return eventmodels.SurfaceSeries{}, fmt.Errorf("BuildSmile: %w", err)
		}
	}

	label := fmt.Sprintf("expiration %s", expiration)
	if opts.OptionType != "" {
		label = fmt.Sprintf("%s %ss", label, opts.OptionType)
	}

	series := eventmodels.SurfaceSeries{
		Dimension: eventmodels.SurfaceDimensionStrike,
		Label:     label,
	}

	for _, item := range items {
		if item.Quote.Spec.Expiration.Format("2006-01-02") != expiration {
			continue
		}

		if opts.OptionType != "" && item.Quote.Spec.OptionType != opts.OptionType {
			continue
		}

		if !item.IV.Converged && !opts.IncludeNonConverged {
			continue
		}

		series.Underlying = item.Quote.Spec.Underlying
		series.Points = append(series.Points, eventmodels.SurfacePoint{
			X:                 item.Quote.Spec.Strike,
			ImpliedVolatility: item.IV.ImpliedVolatility,
		})
	}

	if len(series.Points) == 0 {
		return eventmodels.SurfaceSeries{}, fmt.Errorf("BuildSmile: expiration %s: %w", expiration, eventmodels.NoSurfaceDataErr)
	}

	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].X < series.Points[j].X
	})

	return series, nil
}

// BuildTermStructure collects near-the-money implied volatilities into a
// series keyed by time to expiry, ascending. Strikes within moneynessBand of
// spot qualify; each expiry's point is the mean of its qualifying solves.
func BuildTermStructure(items []eventmodels.ChainAnalyticsItem, moneynessBand float64, opts SurfaceOptions) (eventmodels.SurfaceSeries, error) {
	if moneynessBand <= 0 {
		return eventmodels.SurfaceSeries{}, fmt.Errorf("BuildTermStructure: moneyness band must be positive, got %v: %w", moneynessBand, eventmodels.InvalidInputErr)
	}

	if opts.OptionType != "" {
		if err := opts.OptionType.Validate(); err != nil {
			return eventmodels.SurfaceSeries{}, fmt.Errorf("BuildTermStructure: %w", err)
		}
	}

	series := eventmodels.SurfaceSeries{
		Dimension: eventmodels.SurfaceDimensionExpiry,
		Label:     fmt.Sprintf("strikes within %.0f%% of spot", moneynessBand*100),
	}

	grouped := make(map[float64][]float64)

	for _, item := range items {
		if opts.OptionType != "" && item.Quote.Spec.OptionType != opts.OptionType {
			continue
		}

		if !item.IV.Converged && !opts.IncludeNonConverged {
			continue
		}

		moneyness := eventmodels.GetMoneyness(item.Quote.Spec, item.Quote.Market.SpotPrice, moneynessBand)
		if moneyness != eventmodels.OptionMoneynessAtTheMoney {
			continue
		}

		series.Underlying = item.Quote.Spec.Underlying
		t := item.Quote.Spec.TimeToExpiry
		grouped[t] = append(grouped[t], item.IV.ImpliedVolatility)
	}

	if len(grouped) == 0 {
		return eventmodels.SurfaceSeries{}, fmt.Errorf("BuildTermStructure: %w", eventmodels.NoSurfaceDataErr)
	}

	for t, vols := range grouped {
		mean, err := stats.Mean(vols)
		if err != nil {
			return eventmodels.SurfaceSeries{}, fmt.Errorf("BuildTermStructure: failed to calculate mean iv: %v", err)
		}

		series.Points = append(series.Points, eventmodels.SurfacePoint{
			X:                 t,
			ImpliedVolatility: mean,
		})
	}

	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].X < series.Points[j].X
	})

	return series, nil
}
