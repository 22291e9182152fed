package main

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/eventservices"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

const maxSmilesToPrint = 4

type RunArgs struct {
	ConfigPath string
	QuotesPath string
	OutPath    string
	ShowTables bool
}

type RunResult struct {
	Summary eventservices.ChainAnalyticsSummary
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/run_analysis/main.go --quotes data/SPY_quotes.csv",
	Short: "Solve implied volatility and Greeks for a quote snapshot and print surface tables",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		quotesPath, err := cmd.Flags().GetString("quotes")
		if err != nil {
			log.Fatalf("error getting quotes: %v", err)
		}

		outPath, err := cmd.Flags().GetString("output")
		if err != nil {
			log.Fatalf("error getting output: %v", err)
		}

		showTables, err := cmd.Flags().GetBool("tables")
		if err != nil {
			log.Fatalf("error getting tables: %v", err)
		}

		result, err := Run(RunArgs{
			ConfigPath: configPath,
			QuotesPath: quotesPath,
			OutPath:    outPath,
			ShowTables: showTables,
		})

		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("Run %s: %d converged, %d non-converged\n", result.Summary.RunID, result.Summary.Converged, result.Summary.NonConverged)
	},
}

func Run(args RunArgs) (RunResult, error) {
	config, err := eventservices.LoadAnalyticsConfig(args.ConfigPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("error loading analytics config: %v", err)
	}

	quotes, err := eventservices.LoadQuotes(args.QuotesPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("error loading quotes: %v", err)
	}

	opts := batchOptions(config)

	items, summary, err := eventservices.RunChainAnalytics(context.Background(), quotes, opts)
	if err != nil {
		return RunResult{}, fmt.Errorf("error running chain analytics: %v", err)
	}

	if err := eventservices.ExportAnalytics(args.OutPath, items); err != nil {
		return RunResult{}, fmt.Errorf("error exporting analytics: %v", err)
	}

	if args.ShowTables {
		printSurfaces(items, config)
	}

	return RunResult{Summary: summary}, nil
}

func batchOptions(config *eventmodels.AnalyticsConfigYAML) volatility.BatchOptions {
	opts := volatility.DefaultBatchOptions()

	if config.Batch.MaxWorkers > 0 {
		opts.MaxWorkers = config.Batch.MaxWorkers
	}

	if config.Lattice.Steps > 0 {
		opts.LatticeSteps = config.Lattice.Steps
	}

	if config.Solver.InitialGuess > 0 {
		opts.Solver.InitialGuess = config.Solver.InitialGuess
	}

	if config.Solver.Tolerance > 0 {
		opts.Solver.Tolerance = config.Solver.Tolerance
	}

	if config.Solver.SigmaTolerance > 0 {
		opts.Solver.SigmaTolerance = config.Solver.SigmaTolerance
	}

	if config.Solver.MaxIterations > 0 {
		opts.Solver.MaxIterations = config.Solver.MaxIterations
	}

	if config.Solver.SigmaMin > 0 {
		opts.Solver.SigmaMin = config.Solver.SigmaMin
	}

	if config.Solver.SigmaMax > 0 {
		opts.Solver.SigmaMax = config.Solver.SigmaMax
	}

	return opts
}

func printSurfaces(items []eventmodels.ChainAnalyticsItem, config *eventmodels.AnalyticsConfigYAML) {
	surfaceOpts := volatility.SurfaceOptions{
		IncludeNonConverged: config.Surface.IncludeNonConverged,
	}

	expirationSet := make(map[string]struct{})
	for _, item := range items {
		expirationSet[item.Quote.Spec.Expiration.Format("2006-01-02")] = struct{}{}
	}

	expirations := make([]string, 0, len(expirationSet))
	for expiration := range expirationSet {
		expirations = append(expirations, expiration)
	}

	sort.Strings(expirations)

	if len(expirations) > maxSmilesToPrint {
		expirations = expirations[:maxSmilesToPrint]
	}

	for _, expiration := range expirations {
		for _, optionType := range []eventmodels.OptionType{eventmodels.Call, eventmodels.Put} {
			opts := surfaceOpts
			opts.OptionType = optionType

			smile, err := volatility.BuildSmile(items, expiration, opts)
			if err != nil {
				log.Warnf("skipping %s smile for %s: %v", optionType, expiration, err)
				continue
			}

			fmt.Println(smile)
		}
	}

	band := config.Surface.MoneynessBand
	if band <= 0 {
		band = 0.1
	}

	termStructure, err := volatility.BuildTermStructure(items, band, surfaceOpts)
	if err != nil {
		log.Warnf("skipping term structure: %v", err)
		return
	}

	fmt.Println(termStructure)
}

func main() {
	runCmd.PersistentFlags().String("config", "options.yaml", "Path to the analytics config file.")
	runCmd.PersistentFlags().String("quotes", "", "Path to a quote snapshot csv.")
	runCmd.PersistentFlags().String("output", "data/analytics.csv", "Path for the analytics csv.")
	runCmd.PersistentFlags().Bool("tables", true, "Print smile and term structure tables.")

	runCmd.MarkPersistentFlagRequired("quotes")

	runCmd.Execute()
}
