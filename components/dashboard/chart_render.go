package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns a chart widget's normalized series into
// standalone ECharts HTML.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithTheme sets the chart theme (defaults to Westeros).
func WithTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderSeries renders the widget's price series as a smoothed line
// chart. Results are cached per widget and series content.
func (r *ChartRenderer) RenderSeries(w *ChartWidget, series []SeriesPoint) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("dashboard: chart series is required")
	}
	renderFn := func() (string, error) {
		return r.render(w, series)
	}
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", w.ID, w.Symbol, seriesHash(series))
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (r *ChartRenderer) render(w *ChartWidget, series []SeriesPoint) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(w.Title, w.Symbol)...)

	labels := make([]string, len(series))
	data := make([]opts.LineData, len(series))
	for i, point := range series {
		labels[i] = point.Label
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	line.SetXAxis(labels)
	line.AddSeries(w.Symbol, data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
