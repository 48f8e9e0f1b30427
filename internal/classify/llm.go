package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/entity"
	"github.com/greenpromise/emissions-tracker/internal/llm"
)

// Assignment is one classifier verdict for a row in the batch.
type Assignment struct {
	Category   constants.Category
	Confidence constants.Confidence
}

// Classifier sends the rows the rule table could not place to an
// inference provider in a single numbered batch.
type Classifier struct {
	provider llm.Provider
	logger   *slog.Logger
}

func NewClassifier(provider llm.Provider, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{provider: provider, logger: logger}
}

// Categorize returns one assignment per input row, in input order.
// Without a provider every row falls to other/low; that is not an
// error. Rows the provider skips also fall to other/low.
func (c *Classifier) Categorize(ctx context.Context, rows []entity.ExpenseRecord) ([]Assignment, error) {
	out := make([]Assignment, len(rows))
	for i := range out {
		out[i] = Assignment{Category: constants.Other, Confidence: constants.ConfidenceLow}
	}
	if len(rows) == 0 {
		return out, nil
	}
	if c.provider == nil {
		return out, nil
	}

	start := time.Now()
	raw, err := c.provider.Generate(ctx, llm.Request{
		System: llm.CategorizeSystemPrompt,
		Text:   buildBatchPrompt(rows),
	})
	if err != nil {
		return nil, err
	}

	items, err := llm.ParseItems(raw)
	if err != nil {
		return nil, err
	}

	assigned := 0
	for _, item := range items {
		idx := llm.IntField(item, "index")
		if idx < 1 || idx > len(rows) {
			continue
		}
		cat, ok := constants.Canonicalize(llm.StringField(item, "category"))
		if !ok {
			continue
		}
		out[idx-1] = Assignment{
			Category:   cat,
			Confidence: constants.CanonicalizeConfidence(llm.StringField(item, "confidence")),
		}
		assigned++
	}

	c.logger.Info("classify.batch.ok",
		"rows", len(rows),
		"assigned", assigned,
		"elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

func buildBatchPrompt(rows []entity.ExpenseRecord) string {
	var b strings.Builder
	b.WriteString("Categorize these business expenses:\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. Vendor: %q | Description: %q | Amount: $%s\n",
			i+1, r.Vendor, r.Description, r.Amount.StringFixed(2))
	}
	return b.String()
}
