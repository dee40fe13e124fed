package dashboard

import (
	"github.com/ettle/strcase"
)

// seedWidgets is the starter collection used when the backend holds no
// persisted document. IDs are assigned by the store at seed time.
var seedWidgets = []WidgetConfig{
	&CompanyOverviewWidget{
		WidgetMeta: WidgetMeta{
			Title:           "Apple Inc. Overview",
			RefreshInterval: 300,
		},
		Symbol: "AAPL",
		SelectedFields: []string{
			"Symbol",
			"Name",
			"MarketCapitalization",
			"PERatio",
			"EBITDA",
			"Beta",
		},
	},
	&ChartWidget{
		WidgetMeta: WidgetMeta{
			Title:           "Microsoft Price History",
			RefreshInterval: 900,
		},
		Symbol: "MSFT",
	},
	&TableWidget{
		WidgetMeta: WidgetMeta{
			Title:           "Crypto Markets",
			RefreshInterval: 120,
			APIURL:          "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=10&page=1",
		},
		Category: "crypto",
		SelectedFields: []string{
			"symbol",
			"current_price",
			"market_cap",
			"price_change_percentage_24h",
		},
		DisplayMode: DisplayTable,
	},
	&FinanceCardWidget{
		WidgetMeta: WidgetMeta{
			Title:           "Watchlist",
			RefreshInterval: 300,
			APIURL:          "mock://finance-card/watchlist",
		},
		Category:       CategoryWatchlist,
		SelectedFields: []string{"symbol", "price", "change_percent"},
		DisplayMode:    DisplayCard,
	},
	&FinanceCardWidget{
		WidgetMeta: WidgetMeta{
			Title:           "Market Gainers",
			RefreshInterval: 300,
			APIURL:          "mock://finance-card/gainers",
		},
		Category:       CategoryGainers,
		SelectedFields: []string{"symbol", "price", "change_percent"},
		DisplayMode:    DisplayList,
	},
	&FinanceCardWidget{
		WidgetMeta: WidgetMeta{
			Title:           "Performance",
			RefreshInterval: 600,
			APIURL:          "mock://finance-card/performance",
		},
		Category:       CategoryPerformance,
		SelectedFields: []string{"metric", "value"},
		DisplayMode:    DisplayList,
	},
}

// DefaultSeedWidgets returns deep copies of the starter collection.
func DefaultSeedWidgets() []WidgetConfig {
	out := make([]WidgetConfig, len(seedWidgets))
	for i, w := range seedWidgets {
		out[i] = w.Clone()
	}
	return out
}

// DefaultTitle derives a display title for a widget type, optionally
// suffixed with a hint such as the symbol.
func DefaultTitle(t WidgetType, hint string) string {
	title := strcase.ToCase(string(t), strcase.TitleCase, ' ')
	if hint != "" {
		return title + ": " + hint
	}
	return title
}
