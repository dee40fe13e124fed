package dashboard

import (
	"encoding/json"
	"fmt"
)

// storageSchemaVersion tracks the persisted document layout. Documents
// written by older schema versions rehydrate with safe defaults rather
// than failing to load.
const storageSchemaVersion = 1

// widgetEnvelope is the wire form of a widget: the tagged-union JSON
// shape shared with the persisted document and the creation flow.
type widgetEnvelope struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Type            WidgetType   `json:"type"`
	Params          widgetParams `json:"params"`
	APIURL          string       `json:"apiUrl,omitempty"`
	RefreshInterval int          `json:"refreshInterval"`
	SelectedFields  []string     `json:"selectedFields,omitempty"`
	DisplayMode     DisplayMode  `json:"displayMode,omitempty"`
}

type widgetParams struct {
	Symbol   string   `json:"symbol,omitempty"`
	Symbols  []string `json:"symbols,omitempty"`
	Category string   `json:"category,omitempty"`
}

type storageDocument struct {
	Version int              `json:"version"`
	Widgets []widgetEnvelope `json:"widgets"`
}

// MarshalWidgets encodes the ordered collection for persistence.
func MarshalWidgets(widgets []WidgetConfig) ([]byte, error) {
	doc := storageDocument{
		Version: storageSchemaVersion,
		Widgets: make([]widgetEnvelope, 0, len(widgets)),
	}
	for _, w := range widgets {
		doc.Widgets = append(doc.Widgets, encodeWidget(w))
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalWidgets decodes a persisted document. Widgets with unknown
// type tags are skipped so newer documents still load; fields absent
// from older documents take safe defaults.
func UnmarshalWidgets(data []byte) ([]WidgetConfig, error) {
	var doc storageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dashboard: parse widget document: %w", err)
	}
	widgets := make([]WidgetConfig, 0, len(doc.Widgets))
	for _, env := range doc.Widgets {
		w, err := decodeWidget(env)
		if err != nil {
			continue
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}

func encodeWidget(w WidgetConfig) widgetEnvelope {
	meta := w.Meta()
	env := widgetEnvelope{
		ID:              meta.ID,
		Title:           meta.Title,
		Type:            w.Type(),
		APIURL:          meta.APIURL,
		RefreshInterval: meta.RefreshInterval,
	}
	switch v := w.(type) {
	case *CompanyOverviewWidget:
		env.Params.Symbol = v.Symbol
		env.SelectedFields = v.SelectedFields
	case *ChartWidget:
		env.Params.Symbol = v.Symbol
		env.SelectedFields = v.SelectedFields
	case *TableWidget:
		env.Params.Symbols = v.Symbols
		env.Params.Category = v.Category
		env.SelectedFields = v.SelectedFields
		env.DisplayMode = v.DisplayMode
	case *FinanceCardWidget:
		env.Params.Category = string(v.Category)
		env.SelectedFields = v.SelectedFields
		env.DisplayMode = v.DisplayMode
	}
	return env
}

func decodeWidget(env widgetEnvelope) (WidgetConfig, error) {
	meta := WidgetMeta{
		ID:              env.ID,
		Title:           env.Title,
		RefreshInterval: env.RefreshInterval,
		APIURL:          env.APIURL,
	}
	fields := env.SelectedFields
	if fields == nil {
		fields = []string{}
	}
	switch env.Type {
	case TypeCompanyOverview:
		return &CompanyOverviewWidget{WidgetMeta: meta, Symbol: env.Params.Symbol, SelectedFields: fields}, nil
	case TypeChart:
		return &ChartWidget{WidgetMeta: meta, Symbol: env.Params.Symbol, SelectedFields: fields}, nil
	case TypeTable:
		return &TableWidget{
			WidgetMeta:     meta,
			Symbols:        env.Params.Symbols,
			Category:       env.Params.Category,
			SelectedFields: fields,
			DisplayMode:    env.DisplayMode,
		}, nil
	case TypeFinanceCard:
		return &FinanceCardWidget{
			WidgetMeta:     meta,
			Category:       CardCategory(env.Params.Category),
			SelectedFields: fields,
			DisplayMode:    env.DisplayMode,
		}, nil
	default:
		return nil, fmt.Errorf("dashboard: unknown widget type %q", env.Type)
	}
}
