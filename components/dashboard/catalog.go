package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	catalogVersionV1 = "1"
	// CatalogVersion exposes the current catalog format version for tooling.
	CatalogVersion = catalogVersionV1
)

// WidgetCatalog models a YAML document describing a dashboard's widget
// collection, typically used to seed a fresh store.
type WidgetCatalog struct {
	Version string          `json:"version" yaml:"version"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []CatalogWidget `json:"widgets" yaml:"widgets"`
	Source  string          `json:"-" yaml:"-"`
}

// CatalogWidget describes one widget entry. Params mirror the wire
// envelope's variant-specific block.
type CatalogWidget struct {
	Type            WidgetType    `json:"type" yaml:"type"`
	Title           string        `json:"title" yaml:"title"`
	APIURL          string        `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"`
	RefreshInterval int           `json:"refreshInterval,omitempty" yaml:"refreshInterval,omitempty"`
	SelectedFields  []string      `json:"selectedFields,omitempty" yaml:"selectedFields,omitempty"`
	DisplayMode     DisplayMode   `json:"displayMode,omitempty" yaml:"displayMode,omitempty"`
	Params          CatalogParams `json:"params,omitempty" yaml:"params,omitempty"`
}

// CatalogParams carries the variant-specific widget parameters.
type CatalogParams struct {
	Symbol   string   `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Symbols  []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// defaultCatalogRefresh applies when a catalog entry omits its polling
// cadence.
const defaultCatalogRefresh = 300

// ReadCatalog loads a catalog file from disk.
func ReadCatalog(path string) (*WidgetCatalog, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open catalog %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode catalog %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeCatalog reads a catalog from any reader.
func DecodeCatalog(r io.Reader) (*WidgetCatalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc WidgetCatalog
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: catalog is empty")
		}
		return nil, fmt.Errorf("dashboard: parse catalog: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the catalog satisfies required fields.
func (doc *WidgetCatalog) Validate() error {
	if doc.Version != catalogVersionV1 {
		return fmt.Errorf("dashboard: unsupported catalog version %q", doc.Version)
	}
	known := make(map[WidgetType]struct{}, len(WidgetTypes()))
	for _, t := range WidgetTypes() {
		known[t] = struct{}{}
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if _, ok := known[widget.Type]; !ok {
			return fmt.Errorf("dashboard: catalog widget at index %d has unknown type %q", idx, widget.Type)
		}
		if widget.Title == "" {
			return fmt.Errorf("dashboard: catalog widget at index %d is missing a title", idx)
		}
		if _, exists := seen[widget.Title]; exists {
			return fmt.Errorf("dashboard: catalog duplicates widget title %q", widget.Title)
		}
		seen[widget.Title] = struct{}{}
	}
	return nil
}

func (doc *WidgetCatalog) applyDefaults() {
	if doc.Version == "" {
		doc.Version = catalogVersionV1
	}
	for i := range doc.Widgets {
		if doc.Widgets[i].RefreshInterval <= 0 {
			doc.Widgets[i].RefreshInterval = defaultCatalogRefresh
		}
	}
}

// Configs converts the catalog entries into widget configurations ready
// for seeding. Each widget is validated; ids are left empty for the
// store to assign.
func (doc *WidgetCatalog) Configs() ([]WidgetConfig, error) {
	widgets := make([]WidgetConfig, 0, len(doc.Widgets))
	for idx, entry := range doc.Widgets {
		w, err := decodeWidget(widgetEnvelope{
			Title:           entry.Title,
			Type:            entry.Type,
			APIURL:          entry.APIURL,
			RefreshInterval: entry.RefreshInterval,
			SelectedFields:  entry.SelectedFields,
			DisplayMode:     entry.DisplayMode,
			Params: widgetParams{
				Symbol:   entry.Params.Symbol,
				Symbols:  entry.Params.Symbols,
				Category: entry.Params.Category,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("dashboard: catalog widget at index %d: %w", idx, err)
		}
		normalizeWidget(w)
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("dashboard: catalog widget %q: %w", entry.Title, err)
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}
