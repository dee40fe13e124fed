package marketdata

import (
	"fmt"
	"net/url"
)

const (
	alphaVantageBase = "https://www.alphavantage.co/query"

	// CryptoMarketsURL lists the top crypto markets by capitalization.
	// CoinGecko's public tier needs no key.
	CryptoMarketsURL = "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=10&page=1"
)

// Endpoints resolves default data-source URLs from the client's
// credentials.
type Endpoints struct {
	creds Credentials
}

// NewEndpoints builds a resolver for the given credentials.
func NewEndpoints(creds Credentials) *Endpoints {
	return &Endpoints{creds: creds}
}

// OverviewURL returns the company fundamentals endpoint for a symbol.
func (e *Endpoints) OverviewURL(symbol string) (string, error) {
	return e.alphaVantageURL("OVERVIEW", symbol)
}

// DailySeriesURL returns the daily price series endpoint for a symbol.
func (e *Endpoints) DailySeriesURL(symbol string) (string, error) {
	return e.alphaVantageURL("TIME_SERIES_DAILY", symbol)
}

func (e *Endpoints) alphaVantageURL(function, symbol string) (string, error) {
	if e.creds.AlphaVantage == "" {
		return "", fmt.Errorf("resolve %s url for %s: %w", function, symbol, ErrNoAPIKey)
	}
	query := url.Values{}
	query.Set("function", function)
	query.Set("symbol", symbol)
	query.Set("apikey", e.creds.AlphaVantage)
	return alphaVantageBase + "?" + query.Encode(), nil
}
