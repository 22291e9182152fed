package eventmodels

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type SurfaceDimension string

const (
	SurfaceDimensionStrike SurfaceDimension = "strike"
	SurfaceDimensionExpiry SurfaceDimension = "expiry"
)

// SurfacePoint is one (x, implied volatility) pair of a series. X is a strike
// for a smile and a time to expiry in years for a term structure.
type SurfacePoint struct {
	X                 float64 `json:"x"`
	ImpliedVolatility float64 `json:"implied_volatility"`
}

// SurfaceSeries is a cross-section of the volatility surface along one
// dimension, sorted ascending by X. It is built once from a batch of solved
// quotes and recomputed wholesale when the inputs change.
type SurfaceSeries struct {
	Underlying StockSymbol      `json:"underlying"`
	Dimension  SurfaceDimension `json:"dimension"`
	Label      string           `json:"label"`
	Points     []SurfacePoint   `json:"points"`
}

func (s SurfaceSeries) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)

	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")
	table.SetHeader([]string{string(s.Dimension), "iv"})
	display.WriteString(fmt.Sprintf("%s %s (%s):\n", s.Underlying, s.Dimension, s.Label))

	for _, pt := range s.Points {
		x := p.Sprintf("%.4f", pt.X)
		iv := fmt.Sprintf("%.2f%%", pt.ImpliedVolatility*100)

		table.Append([]string{x, iv})
	}

	table.Render()
	return display.String()
}
