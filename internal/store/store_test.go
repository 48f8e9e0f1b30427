package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("k", []byte("v1")))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Second write replaces, never appends.
	require.NoError(t, s.Set("k", []byte("v2")))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Remove("k"))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResultsRoundTrip(t *testing.T) {
	r := NewResults(openTestStore(t), nil)

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
	}
	saved := entity.BuildResult(rows, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	r.Save(saved)

	loaded := r.Load()
	require.NotNil(t, loaded)
	require.Len(t, loaded.Rows, 1)
	assert.Equal(t, "PG&E Electric", loaded.Rows[0].Vendor)
	assert.Equal(t, constants.Energy, loaded.Rows[0].Category)
	assert.True(t, loaded.Rows[0].CO2Kg.Equal(decimal.RequireFromString("27.96")))
	assert.True(t, loaded.TotalAmount.Equal(saved.TotalAmount))
	assert.True(t, loaded.TotalCO2.Equal(saved.TotalCO2))
	assert.True(t, loaded.AnalyzedAt.Equal(saved.AnalyzedAt))
}

func TestResultsLoadMissing(t *testing.T) {
	r := NewResults(openTestStore(t), nil)
	assert.Nil(t, r.Load())
}

func TestResultsLoadCorrupt(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(resultKey, []byte("{not json")))

	r := NewResults(s, nil)
	assert.Nil(t, r.Load())
}

func TestResultsLoadEmptyRows(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(resultKey, []byte(`{"rows":[]}`)))

	r := NewResults(s, nil)
	assert.Nil(t, r.Load())
}

func TestResultsReset(t *testing.T) {
	s := openTestStore(t)
	r := NewResults(s, nil)

	r.Save(entity.BuildResult([]entity.ExpenseRecord{{Vendor: "A", Amount: decimal.NewFromInt(1)}}, time.Now()))
	require.NotNil(t, r.Load())

	require.NoError(t, r.Reset())
	assert.Nil(t, r.Load())
}
