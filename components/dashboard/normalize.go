package dashboard

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/goliatone/go-finboard/pkg/jsonshape"
	"github.com/goliatone/go-finboard/pkg/marketdata"
)

// cardItemLimit caps how many records a finance card renders.
const cardItemLimit = 5

// chartWindow caps how many samples a chart series keeps.
const chartWindow = 30

// Normalize reduces a raw API payload (or an explicit fetch failure) to
// a terminal Render for the widget. Every failure mode becomes a normal
// render state; nothing escapes as an error.
func Normalize(w WidgetConfig, raw any, fetchErr error) Render {
	if fetchErr != nil {
		if errors.Is(fetchErr, marketdata.ErrNoAPIKey) {
			return errorRender(ErrNoAPIKeyConfigured, fetchErr.Error())
		}
		return errorRender(ErrNetworkOrHTTPFailure, fetchErr.Error())
	}
	if raw == nil {
		return errorRender(ErrEmptyOrMissingPayload, "")
	}
	if obj, ok := raw.(map[string]any); ok {
		if note := providerNote(obj); note != "" {
			return errorRender(ErrProviderRateLimit, note)
		}
	}
	switch v := w.(type) {
	case *CompanyOverviewWidget:
		return normalizeOverview(v, raw)
	case *ChartWidget:
		return normalizeChart(raw)
	case *TableWidget:
		return normalizeTable(v, raw)
	case *FinanceCardWidget:
		return normalizeCard(v, raw)
	default:
		return errorRender(ErrEmptyOrMissingPayload, "")
	}
}

// noteKeys are the sentinel fields providers use to signal rate limits
// or symbol errors inside an HTTP 200 body.
var noteKeys = []string{"Note", "Information", "Error Message", "error"}

func providerNote(obj map[string]any) string {
	for _, key := range noteKeys {
		if msg, ok := obj[key].(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}

func normalizeOverview(w *CompanyOverviewWidget, raw any) Render {
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return errorRender(ErrEmptyOrMissingPayload, "")
	}
	fields := make([]FieldValue, 0, len(w.SelectedFields))
	matched := false
	for _, path := range w.SelectedFields {
		display := notAvailable
		if value, ok := jsonshape.Lookup(raw, path); ok {
			display = FormatValue(value)
			matched = true
		}
		fields = append(fields, FieldValue{Label: path, Value: display})
	}
	if !matched {
		return errorRender(ErrNoMatchingFields, "")
	}
	return Render{State: StateContent, Fields: fields}
}

func normalizeTable(w *TableWidget, raw any) Render {
	records, ok := payloadRecords(raw)
	if !ok || len(records) == 0 {
		return errorRender(ErrEmptyOrMissingPayload, "")
	}
	headers := w.SelectedFields
	if len(headers) == 0 {
		headers = recordKeys(records[0])
	}
	if len(headers) == 0 {
		return errorRender(ErrNoMatchingFields, "")
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(headers))
		for i, header := range headers {
			row[i] = notAvailable
			if value, ok := jsonshape.Lookup(record, header); ok {
				row[i] = FormatValue(value)
			}
		}
		rows = append(rows, row)
	}
	return Render{State: StateContent, Headers: headers, Rows: rows}
}

func normalizeCard(w *FinanceCardWidget, raw any) Render {
	records, ok := payloadRecords(raw)
	if !ok || len(records) == 0 {
		return errorRender(ErrEmptyOrMissingPayload, "")
	}
	if len(records) > cardItemLimit {
		records = records[:cardItemLimit]
	}
	items := make([]CardItem, 0, len(records))
	for _, record := range records {
		item := CardItem{Fields: make([]FieldValue, 0, len(w.SelectedFields))}
		for _, path := range w.SelectedFields {
			display := notAvailable
			if value, ok := jsonshape.Lookup(record, path); ok {
				display = FormatValue(value)
			}
			item.Fields = append(item.Fields, FieldValue{Label: path, Value: display})
		}
		items = append(items, item)
	}
	return Render{State: StateContent, Items: items}
}

// payloadRecords normalizes an arbitrary payload into record form: the
// primary array if one exists, a currency-to-rate map converted to
// {currency, rate} rows, or the object itself as a single record.
func payloadRecords(raw any) ([]any, bool) {
	if records, ok := jsonshape.PrimaryArray(raw); ok {
		return records, true
	}
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, false
	}
	// Coinbase-style envelopes nest the rates map under data.
	if inner, ok := obj["data"].(map[string]any); ok {
		obj = inner
	}
	if rates, ok := obj["rates"].(map[string]any); ok {
		codes := make([]string, 0, len(rates))
		for code := range rates {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		records := make([]any, 0, len(codes))
		for _, code := range codes {
			records = append(records, map[string]any{
				"currency": code,
				"rate":     rates[code],
			})
		}
		return records, true
	}
	return []any{obj}, true
}

func recordKeys(record any) []string {
	obj, ok := record.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalizeChart(raw any) Render {
	series := chartSeries(raw)
	if len(series) == 0 {
		return errorRender(ErrEmptyOrMissingPayload, "")
	}
	return Render{State: StateContent, Series: series}
}

// chartSeries extracts a price series from the known time-series payload
// shapes: an Alpha Vantage daily map, a {prices: [...]} list, or a bare
// array of point objects.
func chartSeries(raw any) []SeriesPoint {
	if obj, ok := raw.(map[string]any); ok {
		if daily, ok := obj["Time Series (Daily)"].(map[string]any); ok {
			return dailySeries(daily)
		}
		if prices, ok := obj["prices"].([]any); ok {
			return pointSeries(prices)
		}
	}
	if arr, ok := raw.([]any); ok {
		return pointSeries(arr)
	}
	return nil
}

func dailySeries(daily map[string]any) []SeriesPoint {
	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > chartWindow {
		dates = dates[len(dates)-chartWindow:]
	}
	series := make([]SeriesPoint, 0, len(dates))
	for _, date := range dates {
		values, ok := daily[date].(map[string]any)
		if !ok {
			continue
		}
		close, ok := toFloat(values["4. close"])
		if !ok {
			continue
		}
		series = append(series, SeriesPoint{Label: dayLabel(date), Value: close})
	}
	return series
}

func pointSeries(points []any) []SeriesPoint {
	if len(points) > chartWindow {
		points = points[len(points)-chartWindow:]
	}
	series := make([]SeriesPoint, 0, len(points))
	for i, point := range points {
		obj, ok := point.(map[string]any)
		if !ok {
			continue
		}
		label := ""
		for _, key := range []string{"date", "time"} {
			if s, ok := obj[key].(string); ok && s != "" {
				label = s
				break
			}
		}
		if label == "" {
			label = "Point " + strconv.Itoa(i+1)
		}
		for _, key := range []string{"price", "value", "close", "y"} {
			if value, ok := toFloat(obj[key]); ok {
				series = append(series, SeriesPoint{Label: label, Value: value})
				break
			}
		}
	}
	return series
}

// dayLabel shortens an ISO date to a "Jan 2" axis label, falling back
// to the raw string for unparseable dates.
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
