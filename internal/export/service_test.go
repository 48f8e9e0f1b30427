package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/entity"
)

func TestReportXLSX(t *testing.T) {
	rows := []entity.ExpenseRecord{
		{
			Vendor:      "PG&E Electric",
			Description: "Monthly power",
			Amount:      decimal.RequireFromString("120"),
			Date:        "2024-01-05",
			Category:    constants.Energy,
			Confidence:  constants.ConfidenceRule,
			CO2Kg:       decimal.RequireFromString("27.96"),
		},
		{
			Vendor:      "Mystery Corp",
			Description: "consulting",
			Amount:      decimal.RequireFromString("50"),
			Category:    constants.Other,
			Confidence:  constants.ConfidenceLow,
			CO2Kg:       decimal.RequireFromString("6"),
		},
	}
	result := entity.BuildResult(rows, time.Now().UTC())

	data, err := NewService(nil).ReportXLSX(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(rowsSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Date", "Vendor", "Description", "Amount (USD)", "Category", "CO2 (kg)", "Confidence"}, got[0])
	assert.Equal(t, "PG&E Electric", got[1][1])
	assert.Equal(t, "120.00", got[1][3])
	assert.Equal(t, "energy", got[1][4])
	assert.Equal(t, "27.96", got[1][5])
	assert.Equal(t, "Matched", got[1][6])
	assert.Equal(t, "Low", got[2][6])

	sum, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	// Header, five categories, TOTAL.
	require.Len(t, sum, 7)
	last := sum[len(sum)-1]
	assert.Equal(t, "TOTAL", last[0])
	assert.Equal(t, "170.00", last[2])
	assert.Equal(t, "33.96", last[3])
}
