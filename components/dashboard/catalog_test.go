package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
version: "1"
name: starter
widgets:
  - type: COMPANY_OVERVIEW
    title: Apple Overview
    params:
      symbol: aapl
    selectedFields:
      - Name
      - PERatio
  - type: TABLE
    title: Crypto Markets
    apiUrl: https://example.test/markets
    refreshInterval: 120
    displayMode: table
    selectedFields:
      - symbol
`

func TestDecodeCatalog(t *testing.T) {
	doc, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, "starter", doc.Name)
	require.Len(t, doc.Widgets, 2)
	assert.Equal(t, defaultCatalogRefresh, doc.Widgets[0].RefreshInterval, "missing interval takes the default")
	assert.Equal(t, 120, doc.Widgets[1].RefreshInterval)
}

func TestDecodeCatalogRejectsUnknownFields(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader("version: \"1\"\nbogus: true\nwidgets: []\n"))
	assert.Error(t, err)
}

func TestDecodeCatalogRejectsBadVersion(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader("version: \"9\"\nwidgets: []\n"))
	assert.Error(t, err)
}

func TestDecodeCatalogRejectsUnknownType(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader(`
version: "1"
widgets:
  - type: HEATMAP
    title: Future
`))
	assert.Error(t, err)
}

func TestDecodeCatalogRejectsDuplicateTitles(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader(`
version: "1"
widgets:
  - type: CHART
    title: Same
    params:
      symbol: MSFT
  - type: CHART
    title: Same
    params:
      symbol: AAPL
`))
	assert.Error(t, err)
}

func TestCatalogConfigs(t *testing.T) {
	doc, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	widgets, err := doc.Configs()
	require.NoError(t, err)
	require.Len(t, widgets, 2)

	overview := widgets[0].(*CompanyOverviewWidget)
	assert.Equal(t, "AAPL", overview.Symbol, "symbols uppercase during conversion")
	assert.Empty(t, overview.ID, "ids are left for the store to assign")

	table := widgets[1].(*TableWidget)
	assert.Equal(t, DisplayTable, table.DisplayMode)
}

func TestCatalogConfigsRejectsInvalidWidgets(t *testing.T) {
	doc, err := DecodeCatalog(strings.NewReader(`
version: "1"
widgets:
  - type: CHART
    title: No Symbol
`))
	require.NoError(t, err)
	_, err = doc.Configs()
	assert.Error(t, err)
}
