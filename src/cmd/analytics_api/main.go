package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analytics/src/eventproducers/analyticsapi"
	"github.com/jiaming2012/options-analytics/src/eventservices"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

type RunArgs struct {
	ConfigPath string
	QuotesPath string
	Port       int
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/analytics_api/main.go --quotes data/SPY_quotes.csv --port 8080",
	Short: "Serve pricing, implied volatility and surface series over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		quotesPath, err := cmd.Flags().GetString("quotes")
		if err != nil {
			log.Fatalf("error getting quotes: %v", err)
		}

		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			log.Fatalf("error getting port: %v", err)
		}

		if err := Run(RunArgs{
			ConfigPath: configPath,
			QuotesPath: quotesPath,
			Port:       port,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	config, err := eventservices.LoadAnalyticsConfig(args.ConfigPath)
	if err != nil {
		return fmt.Errorf("error loading analytics config: %v", err)
	}

	opts := volatility.DefaultBatchOptions()
	if config.Batch.MaxWorkers > 0 {
		opts.MaxWorkers = config.Batch.MaxWorkers
	}
	if config.Lattice.Steps > 0 {
		opts.LatticeSteps = config.Lattice.Steps
	}

	quotes, err := eventservices.LoadQuotes(args.QuotesPath)
	if err != nil {
		return fmt.Errorf("error loading quotes: %v", err)
	}

	items, summary, err := eventservices.RunChainAnalytics(context.Background(), quotes, opts)
	if err != nil {
		return fmt.Errorf("error running chain analytics: %v", err)
	}

	log.Infof("serving analytics for %d contracts (%d converged)", summary.Total, summary.Converged)

	server := analyticsapi.NewServer(items, opts.LatticeSteps, opts.Solver)

	router := mux.NewRouter()
	server.SetupHandler(router)

	addr := fmt.Sprintf(":%d", args.Port)
	log.Infof("listening on %s", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		return fmt.Errorf("server stopped: %v", err)
	}

	return nil
}

func main() {
	runCmd.PersistentFlags().String("config", "options.yaml", "Path to the analytics config file.")
	runCmd.PersistentFlags().String("quotes", "", "Path to a quote snapshot csv.")
	runCmd.PersistentFlags().Int("port", 8080, "Port to listen on.")

	runCmd.MarkPersistentFlagRequired("quotes")

	runCmd.Execute()
}
