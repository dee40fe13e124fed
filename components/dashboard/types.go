package dashboard

import (
	"fmt"
	"strings"
)

// WidgetType discriminates the closed set of widget variants.
type WidgetType string

const (
	TypeCompanyOverview WidgetType = "COMPANY_OVERVIEW"
	TypeChart           WidgetType = "CHART"
	TypeTable           WidgetType = "TABLE"
	TypeFinanceCard     WidgetType = "FINANCE_CARD"
)

// WidgetTypes returns the known variant tags.
func WidgetTypes() []WidgetType {
	return []WidgetType{TypeCompanyOverview, TypeChart, TypeTable, TypeFinanceCard}
}

// DisplayMode selects how table and card widgets lay out their records.
type DisplayMode string

const (
	DisplayTable DisplayMode = "table"
	DisplayCard  DisplayMode = "card"
	DisplayList  DisplayMode = "list"
)

// CardCategory enumerates the finance card data categories.
type CardCategory string

const (
	CategoryWatchlist   CardCategory = "watchlist"
	CategoryGainers     CardCategory = "gainers"
	CategoryPerformance CardCategory = "performance"
	CategoryFinancial   CardCategory = "financial"
)

func (c CardCategory) valid() bool {
	switch c {
	case CategoryWatchlist, CategoryGainers, CategoryPerformance, CategoryFinancial:
		return true
	}
	return false
}

// WidgetMeta carries the fields shared by every widget variant. IDs are
// assigned by the store at creation and are immutable afterwards.
type WidgetMeta struct {
	ID              string
	Title           string
	RefreshInterval int // polling cadence, seconds
	APIURL          string
}

func (m WidgetMeta) validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("dashboard: widget title is required")
	}
	if m.RefreshInterval <= 0 {
		return fmt.Errorf("dashboard: refresh interval must be a positive number of seconds")
	}
	return nil
}

// WidgetConfig is the closed union of dashboard widget variants. The
// four implementations in this package are the only ones; consumers
// dispatch on Type, never on field presence.
type WidgetConfig interface {
	Meta() *WidgetMeta
	Type() WidgetType
	// Fields returns the selected dot-paths, nil for variants without
	// field selection.
	Fields() []string
	Validate() error
	Clone() WidgetConfig

	sealed()
}

// CompanyOverviewWidget renders selected fundamentals for one symbol.
type CompanyOverviewWidget struct {
	WidgetMeta
	Symbol         string
	SelectedFields []string
}

func (w *CompanyOverviewWidget) Meta() *WidgetMeta { return &w.WidgetMeta }
func (w *CompanyOverviewWidget) Type() WidgetType  { return TypeCompanyOverview }
func (w *CompanyOverviewWidget) Fields() []string  { return w.SelectedFields }
func (w *CompanyOverviewWidget) sealed()           {}

func (w *CompanyOverviewWidget) Clone() WidgetConfig {
	clone := *w
	clone.SelectedFields = append([]string(nil), w.SelectedFields...)
	return &clone
}

func (w *CompanyOverviewWidget) Validate() error {
	if err := w.WidgetMeta.validate(); err != nil {
		return err
	}
	if w.Symbol == "" {
		return fmt.Errorf("dashboard: overview widget requires a symbol")
	}
	if len(w.SelectedFields) == 0 {
		return fmt.Errorf("dashboard: overview widget requires at least one selected field")
	}
	return nil
}

// ChartWidget plots the daily close series for one symbol. Field
// selection does not apply to time series.
type ChartWidget struct {
	WidgetMeta
	Symbol         string
	SelectedFields []string
}

func (w *ChartWidget) Meta() *WidgetMeta { return &w.WidgetMeta }
func (w *ChartWidget) Type() WidgetType  { return TypeChart }
func (w *ChartWidget) Fields() []string  { return w.SelectedFields }
func (w *ChartWidget) sealed()           {}

func (w *ChartWidget) Clone() WidgetConfig {
	clone := *w
	clone.SelectedFields = append([]string(nil), w.SelectedFields...)
	return &clone
}

func (w *ChartWidget) Validate() error {
	if err := w.WidgetMeta.validate(); err != nil {
		return err
	}
	if w.Symbol == "" {
		return fmt.Errorf("dashboard: chart widget requires a symbol")
	}
	return nil
}

// TableWidget renders the primary record array of an arbitrary JSON
// source as rows, one column per selected field.
type TableWidget struct {
	WidgetMeta
	Symbols        []string
	Category       string
	SelectedFields []string
	DisplayMode    DisplayMode
}

func (w *TableWidget) Meta() *WidgetMeta { return &w.WidgetMeta }
func (w *TableWidget) Type() WidgetType  { return TypeTable }
func (w *TableWidget) Fields() []string  { return w.SelectedFields }
func (w *TableWidget) sealed()           {}

func (w *TableWidget) Clone() WidgetConfig {
	clone := *w
	clone.Symbols = append([]string(nil), w.Symbols...)
	clone.SelectedFields = append([]string(nil), w.SelectedFields...)
	return &clone
}

func (w *TableWidget) Validate() error {
	if err := w.WidgetMeta.validate(); err != nil {
		return err
	}
	if w.APIURL == "" {
		return fmt.Errorf("dashboard: table widget requires an api url")
	}
	if len(w.SelectedFields) == 0 {
		return fmt.Errorf("dashboard: table widget requires at least one selected field")
	}
	if w.DisplayMode != DisplayTable {
		return fmt.Errorf("dashboard: table widget display mode must be %q", DisplayTable)
	}
	return nil
}

// FinanceCardWidget renders the top records of a categorized source as
// cards or a compact list.
type FinanceCardWidget struct {
	WidgetMeta
	Category       CardCategory
	SelectedFields []string
	DisplayMode    DisplayMode
}

func (w *FinanceCardWidget) Meta() *WidgetMeta { return &w.WidgetMeta }
func (w *FinanceCardWidget) Type() WidgetType  { return TypeFinanceCard }
func (w *FinanceCardWidget) Fields() []string  { return w.SelectedFields }
func (w *FinanceCardWidget) sealed()           {}

func (w *FinanceCardWidget) Clone() WidgetConfig {
	clone := *w
	clone.SelectedFields = append([]string(nil), w.SelectedFields...)
	return &clone
}

func (w *FinanceCardWidget) Validate() error {
	if err := w.WidgetMeta.validate(); err != nil {
		return err
	}
	if w.APIURL == "" {
		return fmt.Errorf("dashboard: finance card widget requires an api url")
	}
	if !w.Category.valid() {
		return fmt.Errorf("dashboard: unknown finance card category %q", w.Category)
	}
	if len(w.SelectedFields) == 0 {
		return fmt.Errorf("dashboard: finance card widget requires at least one selected field")
	}
	if w.DisplayMode != DisplayCard && w.DisplayMode != DisplayList {
		return fmt.Errorf("dashboard: finance card display mode must be %q or %q", DisplayCard, DisplayList)
	}
	return nil
}

// normalizeWidget applies entry normalization: titles are trimmed,
// symbols uppercased.
func normalizeWidget(w WidgetConfig) {
	meta := w.Meta()
	meta.Title = strings.TrimSpace(meta.Title)
	switch v := w.(type) {
	case *CompanyOverviewWidget:
		v.Symbol = strings.ToUpper(strings.TrimSpace(v.Symbol))
	case *ChartWidget:
		v.Symbol = strings.ToUpper(strings.TrimSpace(v.Symbol))
	case *TableWidget:
		for i, symbol := range v.Symbols {
			v.Symbols[i] = strings.ToUpper(strings.TrimSpace(symbol))
		}
	}
}
