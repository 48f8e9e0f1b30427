package doctext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PdftotextRenderer renders PDF pages through the poppler pdftotext binary.
// A form feed separates pages in its output; each page's lines become the
// page's text items.
type PdftotextRenderer struct {
	Bin    string
	runner Runner
}

func NewPdftotextRenderer(bin string) *PdftotextRenderer {
	if bin == "" {
		bin = "pdftotext"
	}
	return &PdftotextRenderer{Bin: bin, runner: execRunner{}}
}

func (r *PdftotextRenderer) PageTextItems(ctx context.Context, doc []byte) ([][]string, error) {
	tmpDir, err := os.MkdirTemp("", "et-doc-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(in, doc, 0o600); err != nil {
		return nil, err
	}

	// pdftotext -layout -enc UTF-8 -eol unix <in> -
	out, errb, err := r.runner.Run(ctx, r.Bin, "-layout", "-enc", "UTF-8", "-eol", "unix", in, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	var pages [][]string
	for _, page := range strings.Split(string(out), "\f") {
		var items []string
		for _, line := range strings.Split(page, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				items = append(items, s)
			}
		}
		pages = append(pages, items)
	}
	return pages, nil
}
