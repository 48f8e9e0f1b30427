package parser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRowsFromText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantCount  int
		wantVendor string
		wantAmount string
		wantDate   string
	}{
		{
			name:       "dollar amount with date",
			text:       "01/15/2024 Acme Office Supply $249.99",
			wantCount:  1,
			wantVendor: "Acme Office Supply",
			wantAmount: "249.99",
			wantDate:   "01/15/2024",
		},
		{
			name:       "bare decimal amount",
			text:       "Shell Fuel Stop 80.50",
			wantCount:  1,
			wantVendor: "Shell Fuel Stop",
			wantAmount: "80.5",
		},
		{
			name:       "thousands separators",
			text:       "Industrial Freight Co $12,450.00",
			wantCount:  1,
			wantVendor: "Industrial Freight Co",
			wantAmount: "12450",
		},
		{
			name:      "label prefix stripped leaving no vendor",
			text:      "Total $500.00",
			wantCount: 0,
		},
		{
			name:       "label prefix stripped but vendor remains",
			text:       "Payment City Power Utility $89.00",
			wantCount:  1,
			wantVendor: "City Power Utility",
		},
		{
			name:      "amount over sanity bound skipped",
			text:      "Account Number 999999.99",
			wantCount: 0,
		},
		{
			name:      "short lines skipped",
			text:      "ab\ncd\n",
			wantCount: 0,
		},
		{
			name:      "multiple lines",
			text:      "Uber Trip $23.40\nnothing here\nFedEx Shipping $18.20",
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ExtractRowsFromText(tt.text)
			require.Len(t, rows, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			if tt.wantVendor != "" {
				assert.Equal(t, tt.wantVendor, rows[0].Vendor)
				assert.Equal(t, rows[0].Vendor, rows[0].Description)
			}
			if tt.wantAmount != "" {
				assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
					"amount %s", rows[0].Amount)
			}
			if tt.wantDate != "" {
				assert.Equal(t, tt.wantDate, rows[0].Date)
			}
		})
	}
}

func TestExtractRowsFromTextNoAmounts(t *testing.T) {
	// Prose without any monetary figures must yield nothing rather than
	// inventing records.
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "this quarterly report discusses sustainability goals and vendor relationships"
	}
	rows := ExtractRowsFromText(strings.Join(lines, "\n"))
	assert.Empty(t, rows)
}
