package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/entity"
)

// Service renders an analysis result as an XLSX workbook: one sheet of
// expense rows, one sheet of category totals.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const (
	rowsSheet    = "Expenses"
	summarySheet = "Summary"
)

// ReportXLSX returns the workbook as bytes.
func (s *Service) ReportXLSX(result *entity.AnalysisResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	// The default sheet becomes the rows sheet.
	if err := f.SetSheetName("Sheet1", rowsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	if err := s.writeRows(f, result); err != nil {
		return nil, err
	}
	if err := s.writeSummary(f, result); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(result.Rows),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeRows(f *excelize.File, result *entity.AnalysisResult) error {
	headers := []string{"Date", "Vendor", "Description", "Amount (USD)", "Category", "CO2 (kg)", "Confidence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(rowsSheet, cell, h); err != nil {
			return err
		}
	}

	for n, r := range result.Rows {
		row := n + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(rowsSheet, cell, v)
		}
		write(1, r.Date)
		write(2, r.Vendor)
		write(3, r.Description)
		write(4, r.Amount.StringFixed(2))
		write(5, string(r.Category))
		write(6, r.CO2Kg.StringFixed(2))
		write(7, r.Confidence.Label())
	}

	_ = f.SetColWidth(rowsSheet, "A", "A", 12)
	_ = f.SetColWidth(rowsSheet, "B", "C", 32)
	_ = f.SetColWidth(rowsSheet, "D", "F", 14)
	_ = f.SetColWidth(rowsSheet, "G", "G", 12)
	return nil
}

func (s *Service) writeSummary(f *excelize.File, result *entity.AnalysisResult) error {
	headers := []string{"Category", "Expenses", "Amount (USD)", "CO2 (kg)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(summarySheet, cell, v)
	}
	for _, cat := range constants.AllCategories {
		sum, ok := result.Summary[cat]
		if !ok {
			continue
		}
		write(1, string(cat))
		write(2, sum.Count)
		write(3, sum.Amount.StringFixed(2))
		write(4, sum.CO2.StringFixed(2))
		row++
	}

	write(1, "TOTAL")
	write(2, len(result.Rows))
	write(3, result.TotalAmount.StringFixed(2))
	write(4, result.TotalCO2.StringFixed(2))

	_ = f.SetColWidth(summarySheet, "A", "A", 14)
	_ = f.SetColWidth(summarySheet, "B", "D", 14)
	return nil
}
