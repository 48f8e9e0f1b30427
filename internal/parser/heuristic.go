package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/greenpromise/emissions-tracker/internal/entity"
)

// Heuristic line extraction: a best-effort regex fallback used only when no
// inference provider is configured. It mines currency and date patterns out
// of unstructured document text.

var (
	reDollarAmount  = regexp.MustCompile(`\$\s*(\d{1,6}(?:,\d{3})*(?:\.\d{2})?)`)
	reNumericAmount = regexp.MustCompile(`\b(\d{1,6}(?:,\d{3})*\.\d{2})\b`)
	reDate          = regexp.MustCompile(`\b(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}|\d{4}[/\-]\d{2}[/\-]\d{2})\b`)
	reLabelPrefix   = regexp.MustCompile(`(?i)^(total|subtotal|balance|tax|tip|due|amount|payment|charge|fee|credit|debit)\b\s*`)
	reWhitespace    = regexp.MustCompile(`\s+`)
)

// maxLineAmount is a sanity bound against misparsed totals and ID numbers.
var maxLineAmount = decimal.NewFromInt(500000)

// ExtractRowsFromText scans text line by line, emitting a record for every
// line carrying a plausible amount and a usable vendor label. No precision
// is guaranteed; the goal is something rather than nothing.
func ExtractRowsFromText(text string) []entity.ExpenseRecord {
	var rows []entity.ExpenseRecord

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 4 {
			continue
		}

		amountStr, amount, ok := findAmount(trimmed)
		if !ok || !amount.IsPositive() || amount.GreaterThan(maxLineAmount) {
			continue
		}

		date := reDate.FindString(trimmed)

		vendor := strings.Replace(trimmed, amountStr, "", 1)
		if date != "" {
			vendor = strings.Replace(vendor, date, "", 1)
		}
		vendor = strings.NewReplacer(",", "", "$", "").Replace(vendor)
		vendor = strings.TrimSpace(reWhitespace.ReplaceAllString(vendor, " "))
		vendor = strings.TrimSpace(reLabelPrefix.ReplaceAllString(vendor, ""))
		if len([]rune(vendor)) < 2 {
			continue
		}

		label := entity.Truncate(vendor, entity.MaxFieldLen)
		rec, ok := entity.NewRecord(label, label, amount, date)
		if !ok {
			continue
		}
		rows = append(rows, rec)
	}
	return rows
}

// findAmount prefers a currency-prefixed amount, falling back to a bare
// decimal with two places.
func findAmount(line string) (string, decimal.Decimal, bool) {
	if m := reDollarAmount.FindStringSubmatch(line); m != nil {
		return m[0], parseAmount(m[1]), true
	}
	if m := reNumericAmount.FindStringSubmatch(line); m != nil {
		return m[0], parseAmount(m[1]), true
	}
	return "", decimal.Zero, false
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}
