package eventservices

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

type ChainAnalyticsSummary struct {
	RunID        uuid.UUID `json:"run_id"`
	Total        int       `json:"total"`
	Converged    int       `json:"converged"`
	NonConverged int       `json:"non_converged"`
}

// RunChainAnalytics solves implied volatility and Greeks across a chain of
// quotes. Individual non-converged solves are counted, not fatal; the
// returned items cover every quote the batch got to before cancellation.
func RunChainAnalytics(ctx context.Context, quotes []eventmodels.OptionQuote, opts volatility.BatchOptions) ([]eventmodels.ChainAnalyticsItem, ChainAnalyticsSummary, error) {
	tracer := otel.Tracer("RunChainAnalytics")
	ctx, span := tracer.Start(ctx, "RunChainAnalytics")
	defer span.End()

	if len(quotes) == 0 {
		return nil, ChainAnalyticsSummary{}, fmt.Errorf("RunChainAnalytics: no quotes to analyze")
	}

	runID := uuid.New()

	log.Infof("RunChainAnalytics: run %s: calculating analytics for %d options", runID, len(quotes))

	items := volatility.SolveChain(ctx, quotes, opts)

	summary := ChainAnalyticsSummary{
		RunID: runID,
		Total: len(items),
	}

	for _, item := range items {
		if item.IV.Converged {
			summary.Converged++
		} else {
			summary.NonConverged++
		}
	}

	log.Infof("RunChainAnalytics: run %s: %d converged, %d non-converged", runID, summary.Converged, summary.NonConverged)

	return items, summary, nil
}
