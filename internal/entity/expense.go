package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenpromise/emissions-tracker/constants"
)

// MaxFieldLen bounds vendor and description strings.
const MaxFieldLen = 80

// ExpenseRecord is one extracted line item. Records are created by a
// parser or extractor, mutated exactly twice (category assignment, then
// CO2 estimation) and then treated as immutable.
type ExpenseRecord struct {
	Vendor      string               `json:"vendor"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Date        string               `json:"date"`
	Category    constants.Category   `json:"category,omitempty"`
	Confidence  constants.Confidence `json:"confidence,omitempty"`
	CO2Kg       decimal.Decimal      `json:"co2_kg"`
	// DirectCO2 marks a CO2 figure reported by the extraction source itself;
	// the estimation stage must not overwrite it with a computed value.
	DirectCO2 bool `json:"direct_co2,omitempty"`
}

// NewRecord is the single validating constructor for parsed line items.
// It trims and truncates string fields and stores the absolute amount.
// The second return is false for records that carry no information
// (zero amount with neither vendor nor description) and must be dropped.
func NewRecord(vendor, description string, amount decimal.Decimal, date string) (ExpenseRecord, bool) {
	rec := ExpenseRecord{
		Vendor:      Truncate(strings.TrimSpace(vendor), MaxFieldLen),
		Description: Truncate(strings.TrimSpace(description), MaxFieldLen),
		Amount:      amount.Abs(),
		Date:        strings.TrimSpace(date),
	}
	if rec.Amount.IsZero() && rec.Vendor == "" && rec.Description == "" {
		return ExpenseRecord{}, false
	}
	return rec, true
}

// Truncate bounds s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CategorySummary aggregates spend, emissions and record count for one
// category.
type CategorySummary struct {
	Amount decimal.Decimal `json:"amount"`
	CO2    decimal.Decimal `json:"co2"`
	Count  int             `json:"count"`
}

// AnalysisResult is the persisted artifact of one successful run. It fully
// replaces any prior stored result.
type AnalysisResult struct {
	Rows        []ExpenseRecord                         `json:"rows"`
	Summary     map[constants.Category]*CategorySummary `json:"summary"`
	TotalAmount decimal.Decimal                         `json:"total_amount"`
	TotalCO2    decimal.Decimal                         `json:"total_co2"`
	AnalyzedAt  time.Time                               `json:"analyzed_at"`
}

// BuildResult computes the per-category summary and grand totals over rows.
// Records with a category outside the fixed set accumulate under other, so
// the summary always conserves the row totals.
func BuildResult(rows []ExpenseRecord, analyzedAt time.Time) *AnalysisResult {
	summary := make(map[constants.Category]*CategorySummary, len(constants.AllCategories))
	for _, cat := range constants.AllCategories {
		summary[cat] = &CategorySummary{
			Amount: decimal.Zero,
			CO2:    decimal.Zero,
		}
	}

	totalAmount := decimal.Zero
	totalCO2 := decimal.Zero
	for _, row := range rows {
		cat := row.Category
		if _, ok := summary[cat]; !ok {
			cat = constants.Other
		}
		summary[cat].Amount = summary[cat].Amount.Add(row.Amount)
		summary[cat].CO2 = summary[cat].CO2.Add(row.CO2Kg)
		summary[cat].Count++
		totalAmount = totalAmount.Add(row.Amount)
		totalCO2 = totalCO2.Add(row.CO2Kg)
	}

	return &AnalysisResult{
		Rows:        rows,
		Summary:     summary,
		TotalAmount: totalAmount,
		TotalCO2:    totalCO2,
		AnalyzedAt:  analyzedAt,
	}
}

// TopCategory returns the category with the highest CO2 share, preferring
// earlier table order on ties.
func (r *AnalysisResult) TopCategory() constants.Category {
	top := constants.Other
	best := decimal.NewFromInt(-1)
	for _, cat := range constants.AllCategories {
		if s, ok := r.Summary[cat]; ok && s.CO2.GreaterThan(best) {
			top = cat
			best = s.CO2
		}
	}
	return top
}

// FormatCO2 renders a kg figure the way reports display it: tonnes with two
// decimals at or above 1000 kg, otherwise kg with one decimal.
func FormatCO2(kg decimal.Decimal) string {
	if kg.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return kg.Div(decimal.NewFromInt(1000)).StringFixed(2) + " t"
	}
	return kg.StringFixed(1) + " kg"
}
