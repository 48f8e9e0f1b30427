package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpromise/emissions-tracker/constants"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name        string
		vendor      string
		description string
		amount      string
		wantOK      bool
		wantVendor  string
		wantAmount  string
	}{
		{"plain", "Acme", "widgets", "10.50", true, "Acme", "10.5"},
		{"trims whitespace", "  Acme  ", "widgets", "1", true, "Acme", "1"},
		{"negative becomes absolute", "Refund Co", "", "-25", true, "Refund Co", "25"},
		{"zero amount with vendor kept", "Free Co", "", "0", true, "Free Co", "0"},
		{"empty row dropped", "", "  ", "0", false, "", ""},
		{"amount only kept", "", "", "12", true, "", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := NewRecord(tt.vendor, tt.description, d(tt.amount), "")
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantVendor, rec.Vendor)
			assert.True(t, rec.Amount.Equal(d(tt.wantAmount)), "amount %s", rec.Amount)
		})
	}
}

func TestNewRecordTruncatesByRunes(t *testing.T) {
	rec, ok := NewRecord(strings.Repeat("é", 100), "", d("1"), "")
	require.True(t, ok)
	assert.Equal(t, MaxFieldLen, len([]rune(rec.Vendor)))
}

func TestBuildResultConservation(t *testing.T) {
	rows := []ExpenseRecord{
		{Vendor: "A", Amount: d("120"), Category: constants.Energy, CO2Kg: d("27.96")},
		{Vendor: "B", Amount: d("50"), Category: constants.Other, CO2Kg: d("6.00")},
		{Vendor: "C", Amount: d("80.50"), Category: constants.Transport, CO2Kg: d("14.57")},
		// An out-of-set category must land in other, not vanish.
		{Vendor: "D", Amount: d("10"), Category: constants.Category("bogus"), CO2Kg: d("1.20")},
	}
	res := BuildResult(rows, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, res.TotalAmount.Equal(d("260.50")))
	assert.True(t, res.TotalCO2.Equal(d("49.73")))

	var sumAmount, sumCO2 decimal.Decimal
	var count int
	for _, cat := range constants.AllCategories {
		s := res.Summary[cat]
		require.NotNil(t, s, "summary missing %s", cat)
		sumAmount = sumAmount.Add(s.Amount)
		sumCO2 = sumCO2.Add(s.CO2)
		count += s.Count
	}
	assert.True(t, sumAmount.Equal(res.TotalAmount))
	assert.True(t, sumCO2.Equal(res.TotalCO2))
	assert.Equal(t, len(rows), count)

	assert.Equal(t, 2, res.Summary[constants.Other].Count)
	assert.True(t, res.Summary[constants.Other].Amount.Equal(d("60")))
}

func TestBuildResultEmptyCategoriesPresent(t *testing.T) {
	res := BuildResult(nil, time.Now())
	for _, cat := range constants.AllCategories {
		require.NotNil(t, res.Summary[cat])
		assert.Zero(t, res.Summary[cat].Count)
		assert.True(t, res.Summary[cat].Amount.IsZero())
	}
	assert.True(t, res.TotalAmount.IsZero())
	assert.True(t, res.TotalCO2.IsZero())
}

func TestTopCategory(t *testing.T) {
	rows := []ExpenseRecord{
		{Amount: d("10"), Category: constants.Waste, CO2Kg: d("5")},
		{Amount: d("10"), Category: constants.Energy, CO2Kg: d("5")},
		{Amount: d("10"), Category: constants.Supply, CO2Kg: d("2")},
	}
	res := BuildResult(rows, time.Now())
	// Ties resolve to the earlier category in table order.
	assert.Equal(t, constants.Energy, res.TopCategory())
}

func TestFormatCO2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.0 kg"},
		{"6", "6.0 kg"},
		{"27.96", "28.0 kg"},
		{"999.94", "999.9 kg"},
		{"1000", "1.00 t"},
		{"1250", "1.25 t"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCO2(d(tt.in)), "input %s", tt.in)
	}
}
