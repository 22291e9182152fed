package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/eventservices"
	"github.com/jiaming2012/options-analytics/src/utils"
)

type RunArgs struct {
	GoEnv      string
	ConfigPath string
	OutDir     string
	Symbols    []string
}

type RunResult struct {
	QuoteFiles []string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/run_pipeline/main.go --symbols SPY,AAPL",
	Short: "Fetch option chains and spot prices and store curated quote snapshots",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		symbols, err := cmd.Flags().GetStringSlice("symbols")
		if err != nil {
			log.Fatalf("error getting symbols: %v", err)
		}

		result, err := Run(RunArgs{
			GoEnv:      goEnv,
			ConfigPath: configPath,
			OutDir:     outDir,
			Symbols:    symbols,
		})

		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("Saved quote files: %s\n", strings.Join(result.QuoteFiles, ", "))
	},
}

func Run(args RunArgs) (RunResult, error) {
	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	quotesURL := os.Getenv("TRADIER_QUOTES_URL")
	if quotesURL == "" {
		log.Fatalf("missing TRADIER_QUOTES_URL environment variable")
	}

	chainURL := os.Getenv("TRADIER_OPTION_CHAIN_URL")
	if chainURL == "" {
		log.Fatalf("missing TRADIER_OPTION_CHAIN_URL environment variable")
	}

	expirationsURL := os.Getenv("TRADIER_EXPIRATIONS_URL")
	if expirationsURL == "" {
		log.Fatalf("missing TRADIER_EXPIRATIONS_URL environment variable")
	}

	bearerToken := os.Getenv("TRADIER_BEARER_TOKEN")
	if bearerToken == "" {
		log.Fatalf("missing TRADIER_BEARER_TOKEN environment variable")
	}

	config, err := eventservices.LoadAnalyticsConfig(args.ConfigPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("error loading analytics config: %v", err)
	}

	now := time.Now().UTC()

	riskFreeRate := eventservices.FetchRiskFreeRate(quotesURL, bearerToken)
	log.Infof("Using risk-free rate: %.4f", riskFreeRate)

	var result RunResult

	for _, s := range args.Symbols {
		symbol := eventmodels.NewStockSymbol(s)

		symbolConfig, err := config.GetSymbol(symbol)
		if err != nil {
			return RunResult{}, fmt.Errorf("error looking up symbol %s in config: %v", symbol, err)
		}

		log.Infof("Fetching data for %s ...", symbol)

		tick, err := eventservices.FetchStockTicks(symbol, quotesURL, bearerToken)
		if err != nil {
			return RunResult{}, fmt.Errorf("error fetching spot for %s: %v", symbol, err)
		}

		market := tick.ToMarketState(riskFreeRate, symbolConfig.DividendYield, now)

		if market.SpotPrice <= 0 {
			apiKey := os.Getenv("POLYGON_API_KEY")
			if apiKey == "" {
				return RunResult{}, fmt.Errorf("no spot quote for %s and POLYGON_API_KEY not set for fallback", symbol)
			}

			spotMachine := eventservices.NewPolygonSpotMachine(apiKey)
			spot, err := spotMachine.FetchDailyClose(context.Background(), symbol, now)
			if err != nil {
				return RunResult{}, fmt.Errorf("error fetching fallback spot for %s: %v", symbol, err)
			}

			log.Infof("using polygon daily close %.2f as spot for %s", spot, symbol)
			market.SpotPrice = spot
		}

		expirations, err := eventservices.FetchOptionExpirations(expirationsURL, bearerToken, symbol)
		if err != nil {
			return RunResult{}, fmt.Errorf("error fetching expirations for %s: %v", symbol, err)
		}

		var quotes []eventmodels.OptionQuote
		for _, expiration := range expirations {
			chain, err := eventservices.FetchOptionChain(chainURL, bearerToken, symbol, expiration)
			if err != nil {
				log.Warnf("could not fetch chain for %s exp %s: %v", symbol, expiration.Format("2006-01-02"), err)
				continue
			}

			chainQuotes, err := chain.ToOptionQuotes(symbol, market, eventmodels.American, now)
			if err != nil {
				return RunResult{}, fmt.Errorf("error converting chain for %s: %v", symbol, err)
			}

			quotes = append(quotes, chainQuotes...)
		}

		quotes = eventservices.FilterQuotes(quotes, symbolConfig.ExpirationsInDays, symbolConfig.MaxNoOfStrikes, now)

		if len(quotes) == 0 {
			log.Warnf("no quotes found for %s", symbol)
			continue
		}

		outPath := filepath.Join(args.OutDir, fmt.Sprintf("%s_quotes_%s.csv", symbol, now.Format("20060102_150405")))
		if err := eventservices.SaveQuotes(outPath, quotes); err != nil {
			return RunResult{}, fmt.Errorf("error saving quotes for %s: %v", symbol, err)
		}

		result.QuoteFiles = append(result.QuoteFiles, outPath)
	}

	return result, nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment. Defaults to development.")
	runCmd.PersistentFlags().String("config", "options.yaml", "Path to the analytics config file.")
	runCmd.PersistentFlags().String("outDir", "data", "Directory for quote snapshots.")
	runCmd.PersistentFlags().StringSlice("symbols", []string{"SPY"}, "Ticker symbols to fetch.")

	runCmd.Execute()
}
