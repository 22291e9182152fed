package eventservices

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

func newExportQuote(strike, marketPrice float64) eventmodels.OptionQuote {
	return eventmodels.OptionQuote{
		Symbol:      "SPY260320C00500000",
		MarketPrice: marketPrice,
		Spec: eventmodels.OptionContractSpec{
			Underlying:    eventmodels.NewStockSymbol("SPY"),
			Strike:        strike,
			TimeToExpiry:  0.13,
			OptionType:    eventmodels.Call,
			ExerciseStyle: eventmodels.European,
			Expiration:    time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		Market: eventmodels.MarketState{
			SpotPrice:    500,
			RiskFreeRate: 0.045,
			Timestamp:    time.Date(2026, 2, 2, 15, 30, 0, 0, time.UTC),
		},
	}
}

func TestQuoteSnapshotRoundTrip(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "quotes", "SPY_quotes.csv")

	quotes := []eventmodels.OptionQuote{
		newExportQuote(495, 12.40),
		newExportQuote(505, 7.85),
	}

	err := SaveQuotes(outPath, quotes)
	assert.NoError(t, err)

	restored, err := LoadQuotes(outPath)
	assert.NoError(t, err)
	assert.Equal(t, quotes, restored)
}

func TestLoadQuotesDropsInvalidRows(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "SPY_quotes.csv")

	quotes := []eventmodels.OptionQuote{
		newExportQuote(495, 12.40),
		newExportQuote(505, -1),
	}

	err := SaveQuotes(outPath, quotes)
	assert.NoError(t, err)

	restored, err := LoadQuotes(outPath)
	assert.NoError(t, err)
	assert.Len(t, restored, 1)
	assert.Equal(t, 495.0, restored[0].Spec.Strike)
}

func TestExportAnalytics(t *testing.T) {
	quote := newExportQuote(500, 11.0)

	items, summary, err := RunChainAnalytics(context.Background(), []eventmodels.OptionQuote{quote}, volatility.DefaultBatchOptions())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Total)

	outPath := filepath.Join(t.TempDir(), "analytics.csv")

	err = ExportAnalytics(outPath, items)
	assert.NoError(t, err)

	data, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "calc_iv")
	assert.Contains(t, string(data), quote.Symbol)
}

func TestRunChainAnalyticsEmptyInput(t *testing.T) {
	_, _, err := RunChainAnalytics(context.Background(), nil, volatility.DefaultBatchOptions())
	assert.Error(t, err)
}
