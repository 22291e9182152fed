package eventservices

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

// PolygonSpotMachine fetches underlying price history from the polygon
// aggregates API, used when the quote provider has no spot for a symbol or
// when valuing a chain as of a past session.
type PolygonSpotMachine struct {
	Client *polygon.Client
}

func NewPolygonSpotMachine(apiKey string) *PolygonSpotMachine {
	return &PolygonSpotMachine{
		Client: polygon.New(apiKey),
	}
}

// FetchDailyClose returns the daily close for the session on or before the
// given date.
func (m *PolygonSpotMachine) FetchDailyClose(ctx context.Context, symbol eventmodels.StockSymbol, date time.Time) (float64, error) {
	log.Debugf("fetching polygon daily close for symbol %s", symbol)

	from := date.AddDate(0, 0, -7)

	params := models.ListAggsParams{
		Ticker:     symbol.String(),
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(from),
		To:         models.Millis(date),
	}.WithOrder(models.Asc).WithAdjusted(true)

	iter := m.Client.ListAggs(ctx, params)

	var lastClose float64
	var found bool
	for iter.Next() {
		lastClose = iter.Item().Close
		found = true
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("PolygonSpotMachine: FetchDailyClose: %w", err)
	}

	if !found {
		return 0, fmt.Errorf("PolygonSpotMachine: FetchDailyClose: no aggregates for %s on or before %s", symbol, date.Format("2006-01-02"))
	}

	return lastClose, nil
}
