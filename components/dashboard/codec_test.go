package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalWidgetsRoundTrip(t *testing.T) {
	widgets := []WidgetConfig{
		&CompanyOverviewWidget{
			WidgetMeta:     WidgetMeta{ID: "w1", Title: "Apple", RefreshInterval: 300},
			Symbol:         "AAPL",
			SelectedFields: []string{"Name", "PERatio"},
		},
		&TableWidget{
			WidgetMeta:     WidgetMeta{ID: "w2", Title: "Crypto", RefreshInterval: 120, APIURL: "https://example.test/markets"},
			Category:       "crypto",
			SelectedFields: []string{"symbol"},
			DisplayMode:    DisplayTable,
		},
		&FinanceCardWidget{
			WidgetMeta:     WidgetMeta{ID: "w3", Title: "Watchlist", RefreshInterval: 300, APIURL: "mock://finance-card/watchlist"},
			Category:       CategoryWatchlist,
			SelectedFields: []string{"symbol", "price"},
			DisplayMode:    DisplayCard,
		},
	}

	data, err := MarshalWidgets(widgets)
	require.NoError(t, err)

	decoded, err := UnmarshalWidgets(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	overview, ok := decoded[0].(*CompanyOverviewWidget)
	require.True(t, ok)
	assert.Equal(t, "AAPL", overview.Symbol)
	assert.Equal(t, []string{"Name", "PERatio"}, overview.SelectedFields)

	table, ok := decoded[1].(*TableWidget)
	require.True(t, ok)
	assert.Equal(t, DisplayTable, table.DisplayMode)
	assert.Equal(t, "https://example.test/markets", table.APIURL)

	card, ok := decoded[2].(*FinanceCardWidget)
	require.True(t, ok)
	assert.Equal(t, CategoryWatchlist, card.Category)
}

func TestUnmarshalWidgetsSkipsUnknownTypes(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"widgets": [
			{"id": "w1", "title": "Known", "type": "CHART", "refreshInterval": 300, "params": {"symbol": "MSFT"}},
			{"id": "w2", "title": "Future", "type": "HEATMAP", "refreshInterval": 300, "params": {}}
		]
	}`)
	widgets, err := UnmarshalWidgets(data)
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.Equal(t, TypeChart, widgets[0].Type())
}

func TestUnmarshalWidgetsDefaultsMissingFields(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"widgets": [
			{"id": "w1", "title": "Apple", "type": "COMPANY_OVERVIEW", "refreshInterval": 300, "params": {"symbol": "AAPL"}}
		]
	}`)
	widgets, err := UnmarshalWidgets(data)
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.NotNil(t, widgets[0].Fields())
	assert.Empty(t, widgets[0].Fields())
}

func TestMarshalWidgetsDocumentShape(t *testing.T) {
	data, err := MarshalWidgets(nil)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(storageSchemaVersion), doc["version"])
}

func TestUnmarshalWidgetsRejectsGarbage(t *testing.T) {
	_, err := UnmarshalWidgets([]byte("not json"))
	assert.Error(t, err)
}
