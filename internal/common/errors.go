package common

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the pipeline. Callers discriminate with errors.Is.
var (
	// ErrFormat marks malformed tabular input: a missing required column or
	// no usable data rows.
	ErrFormat = errors.New("format error")

	// ErrUnreadableDocument marks a page-based document with no extractable
	// text layer, usually a scanned image.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrConfiguration marks a stage that needs an inference provider when
	// none is configured.
	ErrConfiguration = errors.New("configuration error")

	// ErrExtraction marks a failed provider call or a provider payload that
	// could not be parsed into any records.
	ErrExtraction = errors.New("extraction error")

	// ErrSizeLimit marks an image over the upload ceiling.
	ErrSizeLimit = errors.New("size limit exceeded")
)

// WrapError annotates err with a message, preserving the sentinel chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
