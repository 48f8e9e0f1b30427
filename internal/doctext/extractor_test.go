package doctext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpromise/emissions-tracker/internal/common"
)

type stubRenderer struct {
	pages [][]string
	err   error
}

func (s *stubRenderer) PageTextItems(_ context.Context, _ []byte) ([][]string, error) {
	return s.pages, s.err
}

func TestExtractorJoinsPages(t *testing.T) {
	e := NewExtractor(&stubRenderer{pages: [][]string{
		{"Invoice", "#1042", "Acme", "Office", "Supply", "Company", "Ltd"},
		{"Total", "due:", "$249.99", "payable", "within", "thirty", "days"},
	}}, nil)

	text, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "Invoice #1042 Acme Office Supply Company Ltd\nTotal due: $249.99 payable within thirty days\n", text)
}

func TestExtractorScannedDocument(t *testing.T) {
	// A scanned PDF renders a near-empty text layer and must fail loudly
	// instead of producing zero records downstream.
	e := NewExtractor(&stubRenderer{pages: [][]string{{"a", "b"}}}, nil)

	_, err := e.Extract(context.Background(), []byte("pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnreadableDocument))
}

func TestExtractorRendererError(t *testing.T) {
	wantErr := errors.New("pdftotext exited 1")
	e := NewExtractor(&stubRenderer{err: wantErr}, nil)

	_, err := e.Extract(context.Background(), []byte("pdf"))
	assert.True(t, errors.Is(err, wantErr))
}
