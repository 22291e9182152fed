package eventservices

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

// FetchOptionChain retrieves the quoted chain for one symbol and expiration
// from the market data provider.
func FetchOptionChain(url, bearerToken string, symbol eventmodels.StockSymbol, expiration time.Time) (*eventmodels.OptionChainResponseDTO, error) {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchOptionChain: failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("symbol", string(symbol))
	q.Add("expiration", expiration.Format("2006-01-02"))
	q.Add("greeks", "false")

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", bearerToken))

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchOptionChain: failed to fetch option chain: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetchOptionChain: failed to fetch option chain, http code %v", res.Status)
	}

	var dto eventmodels.OptionChainResponseDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("fetchOptionChain: failed to decode json: %w", err)
	}

	return &dto, nil
}

// FetchOptionExpirations retrieves the available expiration dates for a
// symbol.
func FetchOptionExpirations(url, bearerToken string, symbol eventmodels.StockSymbol) ([]time.Time, error) {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchOptionExpirations: failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("symbol", string(symbol))
	q.Add("includeAllRoots", "true")

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", bearerToken))

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchOptionExpirations: failed to fetch expirations: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetchOptionExpirations: failed to fetch expirations, http code %v", res.Status)
	}

	var dto struct {
		Expirations struct {
			Date []string `json:"date"`
		} `json:"expirations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("fetchOptionExpirations: failed to decode json: %w", err)
	}

	var expirations []time.Time
	for _, date := range dto.Expirations.Date {
		expiration, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("fetchOptionExpirations: failed to parse expiration date %s: %w", date, err)
		}

		expirations = append(expirations, expiration)
	}

	return expirations, nil
}
