package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/entity"
	"github.com/greenpromise/emissions-tracker/internal/llm"
)

// maxExcerptChars bounds how much document text rides in a single
// extraction request. Longer documents are cut and marked truncated.
const maxExcerptChars = 6000

// Service turns unstructured document text or image bytes into expense
// records via an inference provider.
type Service struct {
	provider llm.Provider
	logger   *slog.Logger
}

func NewService(provider llm.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, logger: logger}
}

// FromText extracts expense rows from raw document text.
func (s *Service) FromText(ctx context.Context, text string) ([]entity.ExpenseRecord, error) {
	excerpt := text
	if len(excerpt) > maxExcerptChars {
		excerpt = excerpt[:maxExcerptChars] + "\n[truncated]"
	}

	start := time.Now()
	raw, err := s.provider.Generate(ctx, llm.Request{
		System: llm.DocumentSystemPrompt,
		Text:   excerpt,
	})
	if err != nil {
		return nil, common.WrapError(common.ErrExtraction, err.Error())
	}

	rows, err := s.decodeRows(raw, false)
	if err != nil {
		return nil, err
	}
	s.logger.Info("extract.text.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds())
	return rows, nil
}

// FromImage extracts expense rows from image bytes. The size cap is
// enforced before any network call so oversized files fail fast.
func (s *Service) FromImage(ctx context.Context, name string, data []byte, mime string) ([]entity.ExpenseRecord, error) {
	if len(data) > constants.MaxImageBytes {
		return nil, common.WrapError(common.ErrSizeLimit,
			fmt.Sprintf("%s exceeds the %dMB image limit", name, constants.MaxImageBytes/(1024*1024)))
	}

	start := time.Now()
	raw, err := s.provider.Generate(ctx, llm.Request{
		System:    llm.ImageSystemPrompt,
		Text:      "Extract the expense line items from this document image.",
		ImageData: data,
		ImageMIME: mime,
	})
	if err != nil {
		return nil, common.WrapError(common.ErrExtraction, err.Error())
	}

	rows, err := s.decodeRows(raw, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("extract.image.ok",
		"file", name,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds())
	return rows, nil
}

// decodeRows parses the provider payload and normalizes each item.
// Document items need a vendor or description to survive; image items
// need a positive amount. An empty survivor set is an extraction
// failure.
func (s *Service) decodeRows(raw string, fromImage bool) ([]entity.ExpenseRecord, error) {
	items, err := llm.ParseItems(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]entity.ExpenseRecord, 0, len(items))
	for _, item := range items {
		rec, ok := normalizeItem(item, fromImage)
		if !ok {
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		if fromImage {
			return nil, common.WrapError(common.ErrExtraction,
				"no expense items found; ensure the file shows a receipt or financial document")
		}
		return nil, common.WrapError(common.ErrExtraction,
			"no recognizable data found; ensure the file contains emission or expense information")
	}
	return rows, nil
}

func normalizeItem(item map[string]any, fromImage bool) (entity.ExpenseRecord, bool) {
	vendor := llm.StringField(item, "vendor")
	description := llm.StringField(item, "description")
	if fromImage {
		if llm.NumberField(item, "amount") <= 0 {
			return entity.ExpenseRecord{}, false
		}
	} else if vendor == "" && description == "" {
		return entity.ExpenseRecord{}, false
	}
	if description == "" {
		description = vendor
	}

	amount := decimal.NewFromFloat(llm.NumberField(item, "amount")).Abs()
	rec := entity.ExpenseRecord{
		Vendor:      entity.Truncate(vendor, entity.MaxFieldLen),
		Description: entity.Truncate(description, entity.MaxFieldLen),
		Amount:      amount,
		Date:        entity.Truncate(llm.StringField(item, "date"), entity.MaxFieldLen),
	}

	if cat, ok := constants.Canonicalize(llm.StringField(item, "category")); ok {
		rec.Category = cat
		rec.Confidence = constants.CanonicalizeConfidence(llm.StringField(item, "confidence"))
	}

	if co2 := decimal.NewFromFloat(llm.NumberField(item, "co2_kg")).Abs(); co2.IsPositive() {
		rec.CO2Kg = co2
		rec.DirectCO2 = true
	}
	return rec, true
}
