package doctext

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/greenpromise/emissions-tracker/internal/common"
)

// minTextChars is the whitespace-stripped length below which a document is
// treated as having no extractable text layer. Scanned PDFs yield near-empty
// text layers that would otherwise silently produce zero records.
const minTextChars = 40

// Extractor pulls plain text out of page-based documents.
type Extractor struct {
	renderer PageRenderer
	logger   *slog.Logger
}

func NewExtractor(renderer PageRenderer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{renderer: renderer, logger: logger}
}

// Extract concatenates text across all pages in page order, joining pages
// with newlines and items within a page with single spaces.
func (e *Extractor) Extract(ctx context.Context, doc []byte) (string, error) {
	start := time.Now()

	pages, err := e.renderer.PageTextItems(ctx, doc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, items := range pages {
		b.WriteString(strings.Join(items, " "))
		b.WriteString("\n")
	}
	text := b.String()

	stripped := len(strings.Join(strings.Fields(text), ""))
	e.logger.Debug("doctext.extract",
		"pages", len(pages),
		"chars", stripped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if stripped < minTextChars {
		return "", common.WrapError(common.ErrUnreadableDocument,
			"this document appears to be a scanned image; save it as a JPG/PNG and re-upload to use the image parser")
	}
	return text, nil
}
