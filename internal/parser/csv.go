package parser

import (
	"regexp"
	"strings"

	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/entity"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseCSV converts delimited text with a header row into expense records
// with category unset. Quoted fields may contain the delimiter; doubled and
// enclosing quotes are unescaped.
func ParseCSV(text string) ([]entity.ExpenseRecord, error) {
	lines := lineBreak.Split(strings.TrimSpace(text), -1)
	if len(lines) < 2 {
		return nil, common.WrapError(common.ErrFormat, "need a header row and at least one data row")
	}

	cm, err := mapColumns(splitLine(lines[0]))
	if err != nil {
		return nil, err
	}

	data := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		data = append(data, splitLine(line))
	}

	rows := collectRows(data, cm)
	if len(rows) == 0 {
		return nil, common.WrapError(common.ErrFormat, "no valid data rows found")
	}
	return rows, nil
}

// splitLine splits one CSV line on commas, honoring quoted fields. A double
// quote toggles quoting state rather than being emitted, which also strips
// enclosing quotes and collapses doubled quotes.
func splitLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, current.String())
	return result
}
