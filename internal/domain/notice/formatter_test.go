package notice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"single line", "  123 Main   St ", "123 Main St"},
		{"comma segments", "123 Main St, Apt 4, Norfolk, VA 23501", "123 Main St\nApt 4\nNorfolk\nVA 23501"},
		{"empty segments dropped", "123 Main St,, , VA", "123 Main St\nVA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAddress(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"nil time pointer", (*time.Time)(nil), ""},
		{"time value", time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), "January 2, 2024"},
		{"date string", "2024-01-02", "January 2, 2024"},
		{"us date string", "03/14/2024", "March 14, 2024"},
		{"unparseable string", "not a date", ""},
		{"unsupported type", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(tt.input))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	amount := decimal.NewFromInt(1250)

	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"empty string", "", ""},
		{"numeric string", "1234.5", "$1,234.50"},
		{"invalid string verbatim", "about twelve", "about twelve"},
		{"int", 1250, "$1,250.00"},
		{"float", 99.9, "$99.90"},
		{"decimal", amount, "$1,250.00"},
		{"decimal pointer", &amount, "$1,250.00"},
		{"nil decimal pointer", (*decimal.Decimal)(nil), ""},
		{"negative", -1234.56, "-$1,234.56"},
		{"large", 1234567.89, "$1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.input))
		})
	}
}

func TestVehicleDescription(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  Vehicle
		expected string
	}{
		{"empty", Vehicle{}, ""},
		{"full", Vehicle{Year: "2019", Make: "Toyota", Model: "Camry", Color: "Blue", VIN: "1HGCM82633A"},
			"2019 Toyota Camry (Blue) VIN 1HGCM82633A"},
		{"no color", Vehicle{Year: "2019", Make: "Toyota", Model: "Camry"}, "2019 Toyota Camry"},
		{"color only", Vehicle{Color: "Blue"}, "(Blue)"},
		{"missing middle part", Vehicle{Year: "2019", Model: "Camry"}, "2019 Camry"},
		{"vin only", Vehicle{VIN: "1HGCM82633A"}, "VIN 1HGCM82633A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VehicleDescription(tt.vehicle))
		})
	}
}
