package volatility

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/pricing"
)

type BatchOptions struct {
	MaxWorkers   int
	LatticeSteps int
	Solver       SolverOptions
}

func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		MaxWorkers:   8,
		LatticeSteps: pricing.DefaultLatticeSteps,
		Solver:       DefaultSolverOptions(),
	}
}

// SolveChain runs the implied volatility solve, and the Greeks for converged
// solves, across a chain of quotes. Every contract is independent, so the
// work is spread over a bounded pool of workers with no ordering between
// contracts; the output preserves the input order. Cancelling the context
// stops scheduling remaining quotes; results already computed are returned.
func SolveChain(ctx context.Context, quotes []eventmodels.OptionQuote, opts BatchOptions) []eventmodels.ChainAnalyticsItem {
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}

	type job struct {
		index int
		quote eventmodels.OptionQuote
	}

	jobsCh := make(chan job)
	results := make([]*eventmodels.ChainAnalyticsItem, len(quotes))

	var wg sync.WaitGroup
	for w := 0; w < opts.MaxWorkers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range jobsCh {
				item, err := solveOne(j.quote, opts)
				if err != nil {
					log.Errorf("SolveChain: skipping %s: %v", j.quote.Symbol, err)
					continue
				}

				results[j.index] = item
			}
		}()
	}

	for i, quote := range quotes {
		select {
		case <-ctx.Done():
			log.Warnf("SolveChain: cancelled after scheduling %d of %d quotes", i, len(quotes))
			goto drain
		case jobsCh <- job{index: i, quote: quote}:
		}
	}

drain:
	close(jobsCh)
	wg.Wait()

	items := make([]eventmodels.ChainAnalyticsItem, 0, len(quotes))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}

	return items
}

func solveOne(quote eventmodels.OptionQuote, opts BatchOptions) (*eventmodels.ChainAnalyticsItem, error) {
	model := pricing.ModelForStyle(quote.Spec.ExerciseStyle, opts.LatticeSteps)

	iv, err := Solve(quote, model, opts.Solver)
	if err != nil {
		return nil, err
	}

	item := &eventmodels.ChainAnalyticsItem{
		Quote: quote,
		IV:    iv,
	}

	if iv.Converged {
		greeks, err := model.Greeks(quote.Spec, quote.Market, iv.ImpliedVolatility)
		if err != nil {
			return nil, err
		}

		item.Greeks = &greeks
	}

	return item, nil
}
