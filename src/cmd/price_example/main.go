package main

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/pricing"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

type RunArgs struct {
	Spot         float64
	Strike       float64
	TimeToExpiry float64
	Rate         float64
	MarketPrice  float64
	OptionType   string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/price_example/main.go --spot 192.5 --strike 190 --expiry-years 0.12 --market-price 7.25",
	Short: "Solve implied volatility for a single contract and validate the pricer against the market price",
	Run: func(cmd *cobra.Command, args []string) {
		spot, err := cmd.Flags().GetFloat64("spot")
		if err != nil {
			log.Fatalf("error getting spot: %v", err)
		}

		strike, err := cmd.Flags().GetFloat64("strike")
		if err != nil {
			log.Fatalf("error getting strike: %v", err)
		}

		timeToExpiry, err := cmd.Flags().GetFloat64("expiry-years")
		if err != nil {
			log.Fatalf("error getting expiry-years: %v", err)
		}

		rate, err := cmd.Flags().GetFloat64("rate")
		if err != nil {
			log.Fatalf("error getting rate: %v", err)
		}

		marketPrice, err := cmd.Flags().GetFloat64("market-price")
		if err != nil {
			log.Fatalf("error getting market-price: %v", err)
		}

		optionType, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("error getting type: %v", err)
		}

		if err := Run(RunArgs{
			Spot:         spot,
			Strike:       strike,
			TimeToExpiry: timeToExpiry,
			Rate:         rate,
			MarketPrice:  marketPrice,
			OptionType:   optionType,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	now := time.Now().UTC()

	quote := eventmodels.OptionQuote{
		Symbol:      "example",
		MarketPrice: args.MarketPrice,
		Spec: eventmodels.OptionContractSpec{
			Underlying:    eventmodels.NewStockSymbol("EXAMPLE"),
			Strike:        args.Strike,
			TimeToExpiry:  args.TimeToExpiry,
			OptionType:    eventmodels.OptionType(args.OptionType),
			ExerciseStyle: eventmodels.European,
			Expiration:    now.Add(time.Duration(args.TimeToExpiry * 365.25 * 24 * float64(time.Hour))),
		},
		Market: eventmodels.MarketState{
			SpotPrice:    args.Spot,
			RiskFreeRate: args.Rate,
			Timestamp:    now,
		},
	}

	model := pricing.NewBlackScholesModel()

	fmt.Println("Solving for implied volatility ...")

	iv, err := volatility.Solve(quote, model, volatility.DefaultSolverOptions())
	if err != nil {
		return fmt.Errorf("error solving implied volatility: %v", err)
	}

	if !iv.Converged {
		return fmt.Errorf("solver did not converge after %d iterations, residual %.6f", iv.Iterations, iv.Residual)
	}

	fmt.Printf("Implied volatility: %.6f (%.2f%%) in %d iterations\n", iv.ImpliedVolatility, iv.ImpliedVolatility*100, iv.Iterations)

	greeks, err := model.Greeks(quote.Spec, quote.Market, iv.ImpliedVolatility)
	if err != nil {
		return fmt.Errorf("error computing greeks: %v", err)
	}

	fmt.Println("Re-pricing with the solved volatility ...")
	fmt.Printf("  Market price: %.6f\n", quote.MarketPrice)
	fmt.Printf("  Model price:  %.6f\n", greeks.Price)
	fmt.Printf("  Difference:   %.8f\n", math.Abs(quote.MarketPrice-greeks.Price))

	fmt.Println("Greeks at the solved volatility:")
	fmt.Printf("  Delta: %+.6f\n", greeks.Delta)
	fmt.Printf("  Gamma: %+.6f\n", greeks.Gamma)
	fmt.Printf("  Vega:  %+.6f\n", greeks.Vega)
	fmt.Printf("  Theta: %+.6f\n", greeks.Theta)

	return nil
}

func main() {
	runCmd.PersistentFlags().Float64("spot", 100, "Spot price of the underlying.")
	runCmd.PersistentFlags().Float64("strike", 100, "Strike price.")
	runCmd.PersistentFlags().Float64("expiry-years", 1, "Time to expiry in years.")
	runCmd.PersistentFlags().Float64("rate", 0.05, "Continuously compounded risk-free rate.")
	runCmd.PersistentFlags().Float64("market-price", 10.4506, "Observed market price.")
	runCmd.PersistentFlags().String("type", "call", "Option type: call or put.")

	runCmd.Execute()
}
