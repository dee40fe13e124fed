package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// notAvailable is rendered for missing values and provider null markers.
const notAvailable = "N/A"

// FormatValue renders an arbitrary payload value for display. Overview,
// table, and card widgets all share this policy so the same value never
// renders two ways. Chart series bypass it and stay numeric.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return notAvailable
	case string:
		return formatString(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case int:
		return formatNumber(float64(v))
	case int64:
		return formatNumber(float64(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatString(s string) string {
	switch strings.TrimSpace(s) {
	case "", "None", "-":
		return notAvailable
	}
	if strings.Contains(s, "%") {
		return formatPercent(s)
	}
	if isDigits(s) {
		return abbreviateMagnitude(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return formatNumber(f)
	}
	return s
}

// formatPercent treats the string as an already-formatted percentage
// change and ensures non-negative values carry an explicit plus sign.
func formatPercent(s string) string {
	trimmed := strings.TrimSpace(s)
	numeric := strings.TrimSuffix(trimmed, "%")
	f, err := strconv.ParseFloat(strings.TrimPrefix(numeric, "+"), 64)
	if err != nil {
		return s
	}
	if f >= 0 && !strings.HasPrefix(trimmed, "+") {
		return "+" + trimmed
	}
	return trimmed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var (
	oneBillion  = decimal.NewFromInt(1_000_000_000)
	oneMillion  = decimal.NewFromInt(1_000_000)
	oneThousand = decimal.NewFromInt(1_000)
)

// abbreviateMagnitude renders digit-only strings, typically large
// integral magnitudes such as market caps, as $B/$M/$K abbreviations.
// Decimal arithmetic keeps values beyond float precision exact.
func abbreviateMagnitude(s string) string {
	n, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	switch {
	case n.GreaterThanOrEqual(oneBillion):
		return "$" + n.DivRound(oneBillion, 1).StringFixed(1) + "B"
	case n.GreaterThanOrEqual(oneMillion):
		return "$" + n.DivRound(oneMillion, 1).StringFixed(1) + "M"
	case n.GreaterThanOrEqual(oneThousand):
		return "$" + n.DivRound(oneThousand, 1).StringFixed(1) + "K"
	default:
		return s
	}
}

// formatNumber distinguishes magnitudes: large values get thousands
// separators, mid-range values two decimals, and sub-unit values six
// decimals so small prices stay legible.
func formatNumber(f float64) string {
	switch {
	case f > 1_000_000:
		return humanize.FormatFloat("#,###.##", f)
	case f > 1:
		return strconv.FormatFloat(f, 'f', 2, 64)
	default:
		return strconv.FormatFloat(f, 'f', 6, 64)
	}
}
