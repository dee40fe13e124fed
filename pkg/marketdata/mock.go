package marketdata

import (
	"fmt"
	"strings"
)

// mockScheme marks URLs served from the built-in datasets instead of
// the network.
const mockScheme = "mock://"

// mockDatasets keys dataset names to payloads shaped like the real
// provider responses they stand in for.
var mockDatasets = map[string]any{
	"finance-card/watchlist": []any{
		map[string]any{"symbol": "AAPL", "price": "175.43", "change_percent": "2.3%"},
		map[string]any{"symbol": "MSFT", "price": "428.90", "change_percent": "1.1%"},
		map[string]any{"symbol": "GOOGL", "price": "141.52", "change_percent": "-0.8%"},
		map[string]any{"symbol": "AMZN", "price": "186.21", "change_percent": "0.4%"},
		map[string]any{"symbol": "NVDA", "price": "131.17", "change_percent": "3.7%"},
	},
	"finance-card/gainers": []any{
		map[string]any{"symbol": "SMCI", "price": "46.12", "change_percent": "12.4%"},
		map[string]any{"symbol": "PLTR", "price": "38.55", "change_percent": "8.9%"},
		map[string]any{"symbol": "COIN", "price": "244.18", "change_percent": "7.2%"},
		map[string]any{"symbol": "MARA", "price": "18.93", "change_percent": "6.5%"},
		map[string]any{"symbol": "RIOT", "price": "10.27", "change_percent": "5.8%"},
	},
	"finance-card/performance": []any{
		map[string]any{"metric": "Day Change", "value": "1.24%"},
		map[string]any{"metric": "Week Change", "value": "-0.6%"},
		map[string]any{"metric": "Month Change", "value": "4.8%"},
		map[string]any{"metric": "Year Change", "value": "18.2%"},
	},
	"finance-card/financial": []any{
		map[string]any{"metric": "Revenue", "value": "394328000000"},
		map[string]any{"metric": "Net Income", "value": "96995000000"},
		map[string]any{"metric": "EBITDA", "value": "130541000000"},
		map[string]any{"metric": "Free Cash Flow", "value": "99584000000"},
	},
	"crypto-table": map[string]any{
		"data": []any{
			map[string]any{"symbol": "btc", "current_price": 67412.0, "market_cap": "1330000000000", "price_change_percentage_24h": "1.9%"},
			map[string]any{"symbol": "eth", "current_price": 3521.4, "market_cap": "423000000000", "price_change_percentage_24h": "2.4%"},
			map[string]any{"symbol": "sol", "current_price": 172.8, "market_cap": "80200000000", "price_change_percentage_24h": "-1.2%"},
		},
	},
}

func mockDataset(url string) (any, error) {
	name := strings.TrimPrefix(url, mockScheme)
	dataset, ok := mockDatasets[name]
	if !ok {
		return nil, fmt.Errorf("marketdata: unknown mock dataset %q", name)
	}
	return dataset, nil
}
