package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/classify"
	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/doctext"
	"github.com/greenpromise/emissions-tracker/internal/entity"
	"github.com/greenpromise/emissions-tracker/internal/export"
	"github.com/greenpromise/emissions-tracker/internal/extract"
	"github.com/greenpromise/emissions-tracker/internal/ingest"
	"github.com/greenpromise/emissions-tracker/internal/llm"
	"github.com/greenpromise/emissions-tracker/internal/llm/anthropic"
	"github.com/greenpromise/emissions-tracker/internal/llm/gemini"
	"github.com/greenpromise/emissions-tracker/internal/pipeline"
	"github.com/greenpromise/emissions-tracker/internal/store"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		dbPath     = flag.String("db", "", "SQLite database path (overrides config)")
		outPath    = flag.String("out", "", "write an XLSX report to this path")
		rulesOnly  = flag.Bool("rules-only", false, "skip AI categorization; unmatched rows become other/low")
		watch      = flag.Bool("watch", false, "watch the given directories and analyze new files as they appear")
		reset      = flag.Bool("reset", false, "clear the stored analysis and exit")
		last       = flag.Bool("last", false, "print the stored analysis from the previous run and exit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Store.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence is a convenience; a broken database must not block a run.
	var results *store.Results
	kv, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		logger.Warn("store.open_failed", "path", cfg.Store.DBPath, "error", err)
	} else {
		defer func() {
			_ = kv.Close()
		}()
		results = store.NewResults(kv, logger)
	}

	if *reset {
		if results == nil {
			printError("Error: no database available to reset\n")
			os.Exit(1)
		}
		if err := results.Reset(); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Stored analysis cleared.")
		return
	}

	if *last {
		if results == nil {
			printError("Error: no database available\n")
			os.Exit(1)
		}
		prior := results.Load()
		if prior == nil {
			fmt.Println("No stored analysis found. Run an analysis first.")
			return
		}
		fmt.Printf("Stored analysis from %s:\n", prior.AnalyzedAt.Format(time.RFC3339))
		printSummary(prior)
		return
	}

	if flag.NArg() == 0 {
		printError("Usage: emissions [flags] <file-or-directory>...\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	provider := buildProvider(cfg, logger)
	var extractor *extract.Service
	if provider != nil {
		extractor = extract.NewService(provider, logger)
	}

	pipe := pipeline.New(pipeline.Options{
		Extractor:  extractor,
		Classifier: classify.NewClassifier(provider, logger),
		Doc:        doctext.NewExtractor(doctext.NewPdftotextRenderer(cfg.Doc.Pdftotext), logger),
		Results:    results,
		RulesOnly:  *rulesOnly,
		Logger:     logger,
	})
	exporter := export.NewService(logger)

	runBatch := func(paths []string) error {
		files, err := ingest.BuildQueue(paths)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no supported files found")
		}

		report, err := pipe.Run(ctx, files)
		for _, f := range files {
			if f.Err != nil {
				printError("  %s: %v\n", f.Name, f.Err)
			}
		}
		if err != nil {
			return err
		}
		for _, w := range report.Warnings {
			printError("Warning: %s\n", w)
		}
		printSummary(report.Result)

		if *outPath != "" {
			data, err := exporter.ReportXLSX(report.Result)
			if err != nil {
				return fmt.Errorf("export report: %w", err)
			}
			if err := os.WriteFile(*outPath, data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", *outPath)
		}
		return nil
	}

	if err := runBatch(flag.Args()); err != nil {
		printError("Error: %v\n", err)
		if !*watch {
			os.Exit(1)
		}
	}

	if *watch {
		if err := watchLoop(ctx, cfg, logger, runBatch); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildProvider wires the configured inference providers behind a
// failover chain. Nil means no key is set anywhere and the pipeline
// runs in its degraded rules-only shape.
func buildProvider(cfg *common.Config, logger *slog.Logger) llm.Provider {
	var primary, secondary llm.Provider
	if cfg.Anthropic.APIKey != "" {
		primary = anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.Anthropic.APIKey,
			BaseURL:   cfg.Anthropic.BaseURL,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			Timeout:   cfg.Anthropic.Timeout,
		}, logger)
	}
	if cfg.Gemini.APIKey != "" {
		secondary = gemini.NewClient(gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		}, logger)
	}
	if primary == nil && secondary == nil {
		return nil
	}
	return llm.NewFailover(primary, secondary, logger)
}

// watchLoop analyzes each new file dropped under the argument
// directories until interrupted.
func watchLoop(ctx context.Context, cfg *common.Config, logger *slog.Logger, runBatch func([]string) error) error {
	var roots []string
	for _, p := range flag.Args() {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			roots = append(roots, p)
		}
	}
	if len(roots) == 0 {
		return fmt.Errorf("--watch needs at least one directory argument")
	}

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:    roots,
		Debounce: cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Watching %d directories. Press Ctrl-C to stop.\n", len(roots))

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			fmt.Printf("New file: %s\n", path)
			if err := runBatch([]string{path}); err != nil {
				printError("Error: %v\n", err)
			}
		case werr, ok := <-errs:
			if ok && werr != nil {
				logger.Warn("watch.error", "error", werr)
			}
		}
	}
}

// printSummary renders the analysis the way the report page narrates
// it: totals, per-category shares, the top emission driver and a tree
// equivalence.
func printSummary(result *entity.AnalysisResult) {
	n := len(result.Rows)
	plural := "s"
	if n == 1 {
		plural = ""
	}
	fmt.Printf("Analyzed %d expense%s totaling $%s, estimated %s of CO2 equivalent.\n",
		n, plural, result.TotalAmount.StringFixed(2), entity.FormatCO2(result.TotalCO2))

	for _, cat := range constants.AllCategories {
		sum, ok := result.Summary[cat]
		if !ok || sum.Count == 0 {
			continue
		}
		co2Pct := percentage(sum.CO2, result.TotalCO2)
		spendPct := percentage(sum.Amount, result.TotalAmount)
		fmt.Printf("  %-22s $%12s  %3d%% of spend  %3d%% of CO2  %s CO2e\n",
			cat.Label(), sum.Amount.StringFixed(2), spendPct, co2Pct, entity.FormatCO2(sum.CO2))
	}

	top := result.TopCategory()
	topSum := result.Summary[top]
	trees := result.TotalCO2.Div(constants.TreeKgPerYear).Round(0)
	fmt.Printf("Top emission driver: %s at %d%% of spend ($%s, %s CO2e).\n",
		top.Label(), percentage(topSum.Amount, result.TotalAmount),
		topSum.Amount.StringFixed(2), entity.FormatCO2(topSum.CO2))
	fmt.Printf("That is roughly the annual carbon absorption of %s trees.\n", trees.String())
}

func percentage(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 0
	}
	return int(part.Div(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
