package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/pricing"
)

var latticeSteps = []int{25, 50, 100, 250, 500, 1000}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/convergence/main.go",
	Short: "Validate the binomial lattice against the closed-form price and show the early exercise premium",
	Run: func(cmd *cobra.Command, args []string) {
		if err := Run(); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run() error {
	spec := eventmodels.OptionContractSpec{
		Underlying:    eventmodels.NewStockSymbol("TEST"),
		Strike:        100,
		TimeToExpiry:  1,
		OptionType:    eventmodels.Call,
		ExerciseStyle: eventmodels.European,
		Expiration:    time.Now().AddDate(1, 0, 0),
	}

	market := eventmodels.MarketState{
		SpotPrice:    100,
		RiskFreeRate: 0.05,
		Timestamp:    time.Now(),
	}

	sigma := 0.2

	bsm := pricing.NewBlackScholesModel()

	target, err := bsm.Price(spec, market, sigma)
	if err != nil {
		return fmt.Errorf("error computing closed-form price: %v", err)
	}

	fmt.Printf("Closed-form target price: %.6f\n\n", target)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"steps", "lattice price", "error", "elapsed"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, steps := range latticeSteps {
		lattice := pricing.NewBinomialModel(steps)

		start := time.Now()
		price, err := lattice.Price(spec, market, sigma)
		if err != nil {
			return fmt.Errorf("error pricing lattice with %d steps: %v", steps, err)
		}
		elapsed := time.Since(start)

		table.Append([]string{
			fmt.Sprintf("%d", steps),
			fmt.Sprintf("%.6f", price),
			fmt.Sprintf("%+.6f", price-target),
			elapsed.String(),
		})
	}

	table.Render()

	fmt.Println("\nAmerican vs. European put value:")

	putSpec := spec
	putSpec.OptionType = eventmodels.Put

	lattice := pricing.NewBinomialModel(500)

	europeanPut, err := lattice.Price(putSpec, market, sigma)
	if err != nil {
		return fmt.Errorf("error pricing european put: %v", err)
	}

	americanSpec := putSpec
	americanSpec.ExerciseStyle = eventmodels.American

	americanPut, err := lattice.Price(americanSpec, market, sigma)
	if err != nil {
		return fmt.Errorf("error pricing american put: %v", err)
	}

	fmt.Printf("  European put: %.6f\n", europeanPut)
	fmt.Printf("  American put: %.6f\n", americanPut)
	fmt.Printf("  Early exercise premium: %.6f\n", americanPut-europeanPut)

	return nil
}

func main() {
	runCmd.Execute()
}
