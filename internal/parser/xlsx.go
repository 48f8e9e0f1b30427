package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/entity"
)

// ParseXLSX reads the first sheet of a workbook and feeds its cells through
// the same column mapping and row rules as the CSV path.
func ParseXLSX(data []byte) ([]entity.ExpenseRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, common.WrapError(common.ErrFormat, fmt.Sprintf("open workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.WrapError(common.ErrFormat, "workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, common.WrapError(common.ErrFormat, fmt.Sprintf("read sheet %q: %v", sheets[0], err))
	}
	if len(cells) < 2 {
		return nil, common.WrapError(common.ErrFormat, "need a header row and at least one data row")
	}

	cm, err := mapColumns(cells[0])
	if err != nil {
		return nil, err
	}

	rows := collectRows(cells[1:], cm)
	if len(rows) == 0 {
		return nil, common.WrapError(common.ErrFormat, "no valid data rows found")
	}
	return rows, nil
}
