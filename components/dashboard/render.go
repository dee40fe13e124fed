package dashboard

// RenderState classifies the outcome of a fetch-and-render cycle. Every
// widget independently sits in exactly one state; a widget's failure
// never affects its siblings.
type RenderState string

const (
	StateLoading RenderState = "loading"
	StateError   RenderState = "error"
	StateEmpty   RenderState = "empty"
	StateContent RenderState = "content"
)

// RenderErrorCode identifies the terminal failure states of the
// fetch-and-render cycle. None are exceptional: each maps to a distinct
// user-facing message and is delivered like any other render.
type RenderErrorCode string

const (
	ErrNoAPIKeyConfigured    RenderErrorCode = "no_api_key_configured"
	ErrNetworkOrHTTPFailure  RenderErrorCode = "network_or_http_failure"
	ErrProviderRateLimit     RenderErrorCode = "provider_rate_limit_or_note"
	ErrEmptyOrMissingPayload RenderErrorCode = "empty_or_missing_payload"
	ErrNoMatchingFields      RenderErrorCode = "no_matching_fields_in_payload"
)

var renderErrorMessages = map[RenderErrorCode]string{
	ErrNoAPIKeyConfigured:    "Data source API key is not configured.",
	ErrNetworkOrHTTPFailure:  "Failed to load data.",
	ErrProviderRateLimit:     "No data found. Check symbol or API limit.",
	ErrEmptyOrMissingPayload: "No data found.",
	ErrNoMatchingFields:      "None of the selected fields are present in the payload.",
}

// FieldValue is one rendered (label, value) pair.
type FieldValue struct {
	Label string
	Value string
}

// SeriesPoint is one chart sample. Values stay raw for plotting;
// display formatting never applies to series.
type SeriesPoint struct {
	Label string
	Value float64
}

// CardItem groups the rendered fields of one record in a card widget.
type CardItem struct {
	Fields []FieldValue
}

// Render is the terminal result delivered to the presentation layer.
// Which content slice is populated depends on the widget variant.
type Render struct {
	State   RenderState
	Code    RenderErrorCode // set for error and empty states
	Message string          // human-readable reason for non-content states
	Detail  string          // provider-supplied note, when present

	Fields  []FieldValue  // overview
	Headers []string      // table
	Rows    [][]string    // table
	Items   []CardItem    // finance card
	Series  []SeriesPoint // chart
}

func errorRender(code RenderErrorCode, detail string) Render {
	state := StateError
	if code == ErrEmptyOrMissingPayload || code == ErrNoMatchingFields {
		state = StateEmpty
	}
	return Render{
		State:   state,
		Code:    code,
		Message: renderErrorMessages[code],
		Detail:  detail,
	}
}
