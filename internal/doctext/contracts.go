package doctext

import "context"

// PageRenderer is the external page-rendering capability: given document
// bytes it yields ordered per-page lists of text-content items.
type PageRenderer interface {
	PageTextItems(ctx context.Context, doc []byte) ([][]string, error)
}
