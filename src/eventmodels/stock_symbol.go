package eventmodels

import (
	"encoding/json"
	"strings"
)

// StockSymbol is an underlying ticker. Symbols are normalized to upper case
// so lookups against config and quote feeds are case insensitive.
type StockSymbol string

func NewStockSymbol(s string) StockSymbol {
	return StockSymbol(strings.ToUpper(s))
}

func (s StockSymbol) String() string {
	return strings.ToUpper(string(s))
}

func (s StockSymbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
