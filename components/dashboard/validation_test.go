package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaValidatorAcceptsValidWidgets(t *testing.T) {
	validator := NewJSONSchemaValidator()
	widgets := []WidgetConfig{
		&CompanyOverviewWidget{
			WidgetMeta:     WidgetMeta{ID: "w1", Title: "Apple", RefreshInterval: 300},
			Symbol:         "AAPL",
			SelectedFields: []string{"Name"},
		},
		&TableWidget{
			WidgetMeta:     WidgetMeta{ID: "w2", Title: "Crypto", RefreshInterval: 120, APIURL: "https://example.test"},
			SelectedFields: []string{"symbol"},
			DisplayMode:    DisplayTable,
		},
		&FinanceCardWidget{
			WidgetMeta:     WidgetMeta{ID: "w3", Title: "Watchlist", RefreshInterval: 300, APIURL: "mock://finance-card/watchlist"},
			Category:       CategoryWatchlist,
			SelectedFields: []string{"symbol"},
			DisplayMode:    DisplayList,
		},
	}
	for _, w := range widgets {
		assert.NoError(t, validator.ValidateWidget(w))
	}
}

func TestJSONSchemaValidatorRejectsMissingSymbol(t *testing.T) {
	validator := NewJSONSchemaValidator()
	w := &CompanyOverviewWidget{
		WidgetMeta: WidgetMeta{ID: "w1", Title: "Apple", RefreshInterval: 300},
	}
	assert.Error(t, validator.ValidateWidget(w))
}

func TestJSONSchemaValidatorRejectsBadCategory(t *testing.T) {
	validator := NewJSONSchemaValidator()
	w := &FinanceCardWidget{
		WidgetMeta:     WidgetMeta{ID: "w1", Title: "Cards", RefreshInterval: 300, APIURL: "mock://finance-card/watchlist"},
		Category:       CardCategory("bogus"),
		SelectedFields: []string{"symbol"},
		DisplayMode:    DisplayCard,
	}
	assert.Error(t, validator.ValidateWidget(w))
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	w := &ChartWidget{
		WidgetMeta: WidgetMeta{ID: "w1", Title: "MSFT", RefreshInterval: 900},
		Symbol:     "MSFT",
	}
	require.NoError(t, validator.ValidateWidget(w))
	require.Len(t, validator.compiled, 1)
	require.NoError(t, validator.ValidateWidget(w))
	require.Len(t, validator.compiled, 1)
}
