package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/common"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildQueue(t *testing.T) {
	dir := t.TempDir()
	csv := writeFile(t, dir, "expenses.csv", "vendor,amount\nAcme,10\n")
	pdf := writeFile(t, dir, "invoice.pdf", "%PDF-1.4")
	writeFile(t, dir, "notes.txt", "ignored inside directories")

	items, err := BuildQueue([]string{csv, pdf, dir})
	require.NoError(t, err)

	// The direct files appear once each even though the directory walk
	// sees them again; the text file is silently skipped.
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, constants.FileStatusWaiting, it.Status)
		assert.NotZero(t, it.Size)
	}
}

func TestBuildQueueUnsupportedNamedFile(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "hello")

	_, err := BuildQueue([]string{txt})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrFormat))
	assert.Contains(t, err.Error(), "notes.txt")
}

func TestBuildQueueMissingPath(t *testing.T) {
	_, err := BuildQueue([]string{"/does/not/exist.csv"})
	assert.Error(t, err)
}

func TestBuildQueueDedupesBySameNameAndSize(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	// Same name and byte size in two directories counts once.
	a := writeFile(t, dirA, "dup.csv", "vendor,amount\nAcme,10\n")
	b := writeFile(t, dirB, "dup.csv", "vendor,amount\nAcme,10\n")

	items, err := BuildQueue([]string{a, b})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("report.CSV"))
	assert.True(t, Allowed("scan.jpeg"))
	assert.True(t, Allowed("book.xlsx"))
	assert.False(t, Allowed("archive.zip"))
	assert.False(t, Allowed("noext"))
}
