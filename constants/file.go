package constants

import "strings"

// FileFormat is the coarse input kind that picks an extraction path.
type FileFormat string

const (
	CSV   FileFormat = "CSV"
	XLSX  FileFormat = "XLSX"
	PDF   FileFormat = "PDF"
	IMAGE FileFormat = "IMAGE"
)

// AllowedExtensions holds the accepted file extensions, lowercase without dot.
var AllowedExtensions = map[string]struct{}{
	"csv":  {},
	"xlsx": {},
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// MaxImageBytes is the ceiling for image uploads, checked before any
// network call is attempted.
const MaxImageBytes = 5 * 1024 * 1024

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its format, or "" when the
// extension is not supported.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "csv":
		return CSV
	case "xlsx":
		return XLSX
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "webp":
		return IMAGE
	default:
		return ""
	}
}

// ImageMIME returns the media type for an image extension, defaulting to
// JPEG when unknown.
func ImageMIME(ext string) string {
	switch NormalizeExt(ext) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
