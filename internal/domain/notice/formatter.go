package notice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Display formatting for merge-field values. All functions are pure and
// total: absent or unparseable input yields an empty string (or the verbatim
// input where noted), never an error.

const longDateLayout = "January 2, 2006"

// FormatAddress normalizes a free-form address for display. Whitespace is
// trimmed and collapsed; comma-separated segments are re-joined as
// newline-separated lines.
func FormatAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, ",") {
		return collapseSpaces(raw)
	}
	var lines []string
	for _, seg := range strings.Split(raw, ",") {
		if seg = collapseSpaces(strings.TrimSpace(seg)); seg != "" {
			lines = append(lines, seg)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatDate formats a date value as a long-form date string.
// Example: 2024-01-02 -> "January 2, 2024"
func FormatDate(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format(longDateLayout)
}

// FormatCurrency formats a monetary value as a dollar amount with thousand
// separators and two decimal places. Numeric strings are parsed; a string
// that does not parse is returned verbatim rather than failing.
// Example: 1250 -> "$1,250.00"
func FormatCurrency(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.TrimSpace(val) == "" {
			return ""
		}
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return val
		}
		return formatUSD(d)
	case *decimal.Decimal:
		if val == nil {
			return ""
		}
		return formatUSD(*val)
	case decimal.Decimal:
		return formatUSD(val)
	case int:
		return formatUSD(decimal.NewFromInt(int64(val)))
	case int32:
		return formatUSD(decimal.NewFromInt(int64(val)))
	case int64:
		return formatUSD(decimal.NewFromInt(val))
	case float32:
		return formatUSD(decimal.NewFromFloat(float64(val)))
	case float64:
		return formatUSD(decimal.NewFromFloat(val))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// VehicleDescription composes a display description from the vehicle parts,
// omitting absent ones. Example: "2019 Toyota Camry (Blue) VIN 1HGCM82633A".
func VehicleDescription(v Vehicle) string {
	var parts []string
	for _, p := range []string{v.Year, v.Make, v.Model} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	desc := strings.Join(parts, " ")
	if color := strings.TrimSpace(v.Color); color != "" {
		if desc != "" {
			desc += " "
		}
		desc += "(" + color + ")"
	}
	if vin := strings.TrimSpace(v.VIN); vin != "" {
		if desc != "" {
			desc += " "
		}
		desc += "VIN " + vin
	}
	return desc
}

// formatUSD renders a decimal as a signed dollar amount with two places
// and thousand separators
func formatUSD(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + "$" + result.String() + "." + decPart
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// toTime converts supported date representations to time.Time
func toTime(v interface{}) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		formats := []string{
			time.RFC3339,
			"2006-01-02T15:04:05Z",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
