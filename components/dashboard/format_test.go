package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "N/A"},
		{"empty string", "", "N/A"},
		{"none marker", "None", "N/A"},
		{"dash marker", "-", "N/A"},
		{"market cap billions", "3024000000000", "$3024.0B"},
		{"millions", "2500000", "$2.5M"},
		{"thousands", "1500", "$1.5K"},
		{"small integer string", "950", "950"},
		{"percent gains plus prefix", "2.3%", "+2.3%"},
		{"percent keeps plus", "+1.1%", "+1.1%"},
		{"percent negative", "-0.8%", "-0.8%"},
		{"numeric string", "28.5", "28.50"},
		{"large float", 1500000.5, "1,500,000.50"},
		{"mid float", 175.432, "175.43"},
		{"sub unit float", 0.5, "0.500000"},
		{"bool", true, "true"},
		{"plain text", "Apple Inc.", "Apple Inc."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatValue(tc.value))
		})
	}
}

func TestFormatValueRoundsAbbreviationsToOneDecimal(t *testing.T) {
	assert.Equal(t, "$1.6B", FormatValue("1550000000"))
	assert.Equal(t, "$999.0M", FormatValue("999000000"))
}
