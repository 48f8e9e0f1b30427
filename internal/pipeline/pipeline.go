package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/classify"
	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/doctext"
	"github.com/greenpromise/emissions-tracker/internal/entity"
	"github.com/greenpromise/emissions-tracker/internal/extract"
	"github.com/greenpromise/emissions-tracker/internal/parser"
	"github.com/greenpromise/emissions-tracker/internal/store"
)

// FileItem is one queued input file. Status and Err are updated in
// place as the batch runs so callers can report per-file progress.
type FileItem struct {
	Name   string
	Path   string
	Size   int64
	Status constants.FileStatus
	Err    error
}

// Report is the outcome of one batch run. Warnings carry degraded but
// non-fatal stages, like a failed classification call.
type Report struct {
	Result   *entity.AnalysisResult
	Warnings []string
}

// Options wires the pipeline's collaborators. Extractor may be nil
// when no inference provider is configured; Results may be nil to skip
// persistence.
type Options struct {
	Extractor  *extract.Service
	Classifier *classify.Classifier
	Doc        *doctext.Extractor
	Results    *store.Results
	RulesOnly  bool
	Logger     *slog.Logger
}

// Pipeline processes a batch of expense files sequentially: parse or
// extract each file, classify rows, estimate CO2, aggregate, persist.
type Pipeline struct {
	extractor  *extract.Service
	classifier *classify.Classifier
	doc        *doctext.Extractor
	results    *store.Results
	rulesOnly  bool
	logger     *slog.Logger
}

func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor:  opts.Extractor,
		classifier: opts.Classifier,
		doc:        opts.Doc,
		results:    opts.Results,
		rulesOnly:  opts.RulesOnly,
		logger:     logger,
	}
}

// Run processes files one at a time. A failing file is marked and
// skipped; the batch only fails as a whole when no file yields any
// rows. The returned result preserves input row order.
func (p *Pipeline) Run(ctx context.Context, files []*FileItem) (*Report, error) {
	rid := uuid.New().String()
	start := time.Now()
	for _, f := range files {
		f.Status = constants.FileStatusWaiting
	}

	var allRows []entity.ExpenseRecord
	var firstErr error
	for i, f := range files {
		f.Status = constants.FileStatusParsing
		p.logger.Info("pipeline.file.start",
			"run_id", rid, "file", f.Name, "index", i+1, "total", len(files))

		rows, err := p.processFile(ctx, f)
		if err != nil {
			f.Status = constants.FileStatusError
			f.Err = err
			if firstErr == nil {
				firstErr = err
			}
			p.logger.Error("pipeline.file.error", "run_id", rid, "file", f.Name, "error", err)
			continue
		}
		f.Status = constants.FileStatusDone
		allRows = append(allRows, rows...)
		p.logger.Info("pipeline.file.ok", "run_id", rid, "file", f.Name, "rows", len(rows))
	}

	if len(allRows) == 0 {
		if firstErr != nil {
			return nil, fmt.Errorf("no valid expense data could be extracted from the uploaded files: %w", firstErr)
		}
		return nil, fmt.Errorf("no valid expense data could be extracted from the uploaded files")
	}

	report := &Report{}
	p.categorize(ctx, allRows, report)
	estimateCO2(allRows)

	report.Result = entity.BuildResult(allRows, time.Now().UTC())
	if p.results != nil {
		p.results.Save(report.Result)
	}

	p.logger.Info("pipeline.run.ok",
		"run_id", rid,
		"files", len(files),
		"rows", len(allRows),
		"total_co2", report.Result.TotalCO2.String(),
		"elapsed_ms", time.Since(start).Milliseconds())
	return report, nil
}

// processFile dispatches on the file extension. Unsupported extensions
// were filtered at queue time, but a stale item still fails cleanly.
func (p *Pipeline) processFile(ctx context.Context, f *FileItem) ([]entity.ExpenseRecord, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}

	ext := filepath.Ext(f.Name)
	switch constants.MapExtToFormat(ext) {
	case constants.CSV:
		return parser.ParseCSV(string(data))
	case constants.XLSX:
		return parser.ParseXLSX(data)
	case constants.PDF:
		return p.processPDF(ctx, data)
	case constants.IMAGE:
		if p.extractor == nil {
			return nil, common.WrapError(common.ErrConfiguration,
				"image extraction needs an inference provider; set an API key")
		}
		return p.extractor.FromImage(ctx, f.Name, data, constants.ImageMIME(ext))
	default:
		return nil, common.WrapError(common.ErrFormat,
			fmt.Sprintf("%s has an unsupported file type", f.Name))
	}
}

// processPDF extracts the text layer and prefers structured extraction
// when a provider is wired in; without one the regex line extractor is
// the fallback.
func (p *Pipeline) processPDF(ctx context.Context, data []byte) ([]entity.ExpenseRecord, error) {
	text, err := p.doc.Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	if p.extractor != nil {
		return p.extractor.FromText(ctx, text)
	}

	rows := parser.ExtractRowsFromText(text)
	if len(rows) == 0 {
		return nil, common.WrapError(common.ErrExtraction,
			"no expense line items found in this document; configure an API key for better parsing")
	}
	return rows, nil
}

// categorize runs the three-stage assignment over rows in place:
// pre-categorized rows keep their category, the keyword table claims
// what it can, and the remainder goes to the batch classifier. A
// classifier failure degrades the remainder to other/low and is
// reported as a warning.
func (p *Pipeline) categorize(ctx context.Context, rows []entity.ExpenseRecord, report *Report) {
	var unknown []int
	for i := range rows {
		if rows[i].Category != "" {
			if rows[i].Confidence == "" {
				rows[i].Confidence = constants.ConfidenceMedium
			}
			continue
		}
		if cat, ok := classify.MatchRule(rows[i].Vendor, rows[i].Description); ok {
			rows[i].Category = cat
			rows[i].Confidence = constants.ConfidenceRule
			continue
		}
		unknown = append(unknown, i)
	}
	if len(unknown) == 0 {
		return
	}

	if p.rulesOnly {
		for _, i := range unknown {
			rows[i].Category = constants.Other
			rows[i].Confidence = constants.ConfidenceLow
		}
		return
	}

	batch := make([]entity.ExpenseRecord, len(unknown))
	for n, i := range unknown {
		batch[n] = rows[i]
	}
	assignments, err := p.classifier.Categorize(ctx, batch)
	if err != nil {
		for _, i := range unknown {
			rows[i].Category = constants.Other
			rows[i].Confidence = constants.ConfidenceLow
		}
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("AI categorization failed: %v", err))
		p.logger.Warn("pipeline.categorize.degraded",
			"rows", len(unknown), "error", err)
		return
	}
	for n, i := range unknown {
		rows[i].Category = assignments[n].Category
		rows[i].Confidence = assignments[n].Confidence
	}
}

// estimateCO2 fills in emissions per row. Source-reported figures are
// kept; everything else is spend times the category factor. Rounding
// to two decimals happens here and nowhere earlier.
func estimateCO2(rows []entity.ExpenseRecord) {
	for i := range rows {
		if rows[i].DirectCO2 && rows[i].CO2Kg.IsPositive() {
			rows[i].CO2Kg = rows[i].CO2Kg.Round(2)
			continue
		}
		factor := constants.FactorFor(rows[i].Category)
		rows[i].CO2Kg = rows[i].Amount.Mul(factor).Round(2)
	}
}
