package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/greenpromise/emissions-tracker/constants"
	"github.com/greenpromise/emissions-tracker/internal/common"
	"github.com/greenpromise/emissions-tracker/internal/pipeline"
)

// BuildQueue turns file and directory paths into a deduplicated batch.
// Directories are walked recursively and contribute only supported
// files; a directly named file with an unsupported extension is an
// error that names the file.
func BuildQueue(paths []string) ([]*pipeline.FileItem, error) {
	var items []*pipeline.FileItem
	seen := map[string]struct{}{}

	add := func(path string, info fs.FileInfo) error {
		name := filepath.Base(path)
		if !Allowed(name) {
			return common.WrapError(common.ErrFormat,
				fmt.Sprintf("%s is not a supported file type (CSV, XLSX, PDF, JPG, PNG, WEBP)", name))
		}
		// Re-selecting the same file must not double-count it.
		key := fmt.Sprintf("%s:%d", name, info.Size())
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}
		items = append(items, &pipeline.FileItem{
			Name:   name,
			Path:   path,
			Size:   info.Size(),
			Status: constants.FileStatusWaiting,
		})
		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if err := add(p, info); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !Allowed(d.Name()) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			return add(path, fi)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return items, nil
}

// Allowed reports whether the file name carries a supported extension.
func Allowed(name string) bool {
	ext := constants.NormalizeExt(filepath.Ext(name))
	_, ok := constants.AllowedExtensions[ext]
	return ok
}
