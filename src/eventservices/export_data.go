package eventservices

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

// SaveQuotes writes a curated quote snapshot, one row per contract.
func SaveQuotes(outPath string, quotes []eventmodels.OptionQuote) error {
	rows := make([]eventmodels.OptionQuoteRow, 0, len(quotes))
	for _, quote := range quotes {
		rows = append(rows, eventmodels.NewOptionQuoteRow(quote))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("SaveQuotes: failed to create output directory: %w", err)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("SaveQuotes: failed to create %s: %w", outPath, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("SaveQuotes: failed to write csv: %w", err)
	}

	log.Infof("SaveQuotes: saved %d rows to %s", len(rows), outPath)

	return nil
}

// LoadQuotes reads a quote snapshot back. Rows that fail validation are
// logged and dropped so one bad row does not abort an analysis run.
func LoadQuotes(inPath string) ([]eventmodels.OptionQuote, error) {
	file, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("LoadQuotes: failed to open %s: %w", inPath, err)
	}

	defer file.Close()

	var rows []eventmodels.OptionQuoteRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("LoadQuotes: failed to read csv: %w", err)
	}

	quotes := make([]eventmodels.OptionQuote, 0, len(rows))
	for _, row := range rows {
		quote, err := row.ToModel()
		if err != nil {
			log.Warnf("LoadQuotes: dropping row %s: %v", row.Symbol, err)
			continue
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// ExportAnalytics writes solved analytics as flat rows.
func ExportAnalytics(outPath string, items []eventmodels.ChainAnalyticsItem) error {
	rows := make([]eventmodels.AnalyticsRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, eventmodels.NewAnalyticsRow(item))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("ExportAnalytics: failed to create output directory: %w", err)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ExportAnalytics: failed to create %s: %w", outPath, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("ExportAnalytics: failed to write csv: %w", err)
	}

	log.Infof("ExportAnalytics: cached %d rows to %s", len(rows), outPath)

	return nil
}
