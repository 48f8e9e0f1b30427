package constants

import "strings"

// Category is one of the fixed emission categories every expense ends up in.
type Category string

const (
	Energy    Category = "energy"
	Transport Category = "transport"
	Supply    Category = "supply"
	Waste     Category = "waste"
	Other     Category = "other"
)

// AllCategories is the canonical ordering used for summaries and prompts.
var AllCategories = []Category{
	Energy,
	Transport,
	Supply,
	Waste,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(AllCategories))
	for i, cat := range AllCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps a free-form label onto the fixed category set.
// The second return is false when the label is not a known category.
func Canonicalize(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for _, cat := range AllCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return "", false
}

// Label renders the category name reports display.
func (c Category) Label() string {
	switch c {
	case Energy:
		return "Energy Efficiency"
	case Transport:
		return "Transportation Impact"
	case Supply:
		return "Supply Chain"
	case Waste:
		return "Waste"
	default:
		return "Other"
	}
}

// Confidence records how a category assignment was made.
type Confidence string

const (
	ConfidenceRule   Confidence = "rule"
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// CanonicalizeConfidence clamps a provider-reported confidence label,
// defaulting to medium for anything unrecognized.
func CanonicalizeConfidence(input string) Confidence {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(ConfidenceRule):
		return ConfidenceRule
	case string(ConfidenceHigh):
		return ConfidenceHigh
	case string(ConfidenceMedium):
		return ConfidenceMedium
	case string(ConfidenceLow):
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

// Label renders a confidence tier for reports.
func (c Confidence) Label() string {
	switch c {
	case ConfidenceRule:
		return "Matched"
	case ConfidenceHigh:
		return "High"
	case ConfidenceMedium:
		return "Medium"
	default:
		return "Low"
	}
}
