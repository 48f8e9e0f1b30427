package constants

import "github.com/shopspring/decimal"

// EmissionFactors maps each category to kg CO2e per USD spent (EPA/EEIO
// derived). Read-only process-wide.
var EmissionFactors = map[Category]decimal.Decimal{
	Energy:    decimal.RequireFromString("0.233"),
	Transport: decimal.RequireFromString("0.181"),
	Supply:    decimal.RequireFromString("0.142"),
	Waste:     decimal.RequireFromString("0.098"),
	Other:     decimal.RequireFromString("0.120"),
}

// FactorFor returns the emission factor for cat, falling back to the
// Other factor for anything outside the fixed set.
func FactorFor(cat Category) decimal.Decimal {
	if f, ok := EmissionFactors[cat]; ok {
		return f
	}
	return EmissionFactors[Other]
}

// TreeKgPerYear is the approximate annual carbon absorption of one tree,
// used for the narrative equivalence in reports.
var TreeKgPerYear = decimal.NewFromInt(21)
