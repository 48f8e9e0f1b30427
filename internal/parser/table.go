package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/entity"
)

// Ordered header-name candidates per logical column. The first header
// containing any candidate substring wins for that column.
var (
	dateHeaders        = []string{"date", "transaction date", "txn date", "posted date", "time"}
	vendorHeaders      = []string{"vendor", "supplier", "merchant", "payee", "company", "name", "description", "memo", "details", "expense", "item"}
	descriptionHeaders = []string{"description", "desc", "details", "memo", "notes", "item", "product", "service", "category"}
	amountHeaders      = []string{"amount", "cost", "price", "total", "charge", "debit", "spend", "value", "usd", "dollars"}
)

type columnMap struct {
	date        int
	vendor      int
	description int
	amount      int
}

// mapColumns resolves the logical columns from a header row. Headers are
// lowercased, trimmed and quote-stripped before matching.
func mapColumns(headers []string) (columnMap, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.TrimSpace(strings.ToLower(stripQuotes(h)))
	}

	cm := columnMap{
		date:        findCol(normalized, dateHeaders),
		vendor:      findCol(normalized, vendorHeaders),
		description: findCol(normalized, descriptionHeaders),
		amount:      findCol(normalized, amountHeaders),
	}
	if cm.amount == -1 {
		return cm, common.WrapError(common.ErrFormat, "could not find an amount column")
	}
	if cm.vendor == -1 && cm.description == -1 {
		return cm, common.WrapError(common.ErrFormat, "could not find a vendor or description column")
	}
	return cm, nil
}

func findCol(headers, candidates []string) int {
	for _, c := range candidates {
		for i, h := range headers {
			if strings.Contains(h, c) {
				return i
			}
		}
	}
	return -1
}

// collectRows maps data rows through the column map, applying the skip rule
// for rows with zero amount and no vendor/description.
func collectRows(lines [][]string, cm columnMap) []entity.ExpenseRecord {
	var rows []entity.ExpenseRecord
	for _, cells := range lines {
		vendor := stripQuotes(cell(cells, cm.vendor))
		desc := stripQuotes(cell(cells, cm.description))
		date := stripQuotes(cell(cells, cm.date))
		amount := scrubAmount(cell(cells, cm.amount))

		rec, ok := entity.NewRecord(vendor, desc, amount, date)
		if !ok {
			continue
		}
		rows = append(rows, rec)
	}
	return rows
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// scrubAmount strips every character except digits, '.' and '-' before
// numeric parsing, defaulting to zero when nothing parseable remains.
func scrubAmount(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func stripQuotes(s string) string {
	return strings.NewReplacer(`"`, "", `'`, "").Replace(s)
}
