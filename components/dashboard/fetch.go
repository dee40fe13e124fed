package dashboard

import (
	"context"
	"fmt"
)

// Fetcher retrieves a raw JSON document from a widget data source.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// EndpointResolver supplies default data-source URLs for the widget
// kinds that have one. Resolvers return a wrapped credential error when
// the backing provider is not configured.
type EndpointResolver interface {
	OverviewURL(symbol string) (string, error)
	DailySeriesURL(symbol string) (string, error)
}

// sourceURL picks the widget's override URL when set, otherwise the
// type-specific default source. Table and card widgets always carry an
// explicit URL; their variants require it at validation.
func sourceURL(w WidgetConfig, endpoints EndpointResolver) (string, error) {
	if url := w.Meta().APIURL; url != "" {
		return url, nil
	}
	switch v := w.(type) {
	case *CompanyOverviewWidget:
		return endpoints.OverviewURL(v.Symbol)
	case *ChartWidget:
		return endpoints.DailySeriesURL(v.Symbol)
	default:
		return "", fmt.Errorf("dashboard: %s widget requires an explicit api url", w.Type())
	}
}

// RunOnce performs a single fetch-and-normalize cycle for a widget.
// The result is always a terminal render, never an error.
func RunOnce(ctx context.Context, w WidgetConfig, fetcher Fetcher, endpoints EndpointResolver) Render {
	url, err := sourceURL(w, endpoints)
	var raw any
	if err == nil {
		raw, err = fetcher.FetchJSON(ctx, url)
	}
	return Normalize(w, raw, err)
}
