package constants

// FileStatus is the per-file progress reported while a batch runs.
type FileStatus string

// Stable values (surfaced verbatim to callers).
const (
	FileStatusWaiting FileStatus = "waiting"
	FileStatusParsing FileStatus = "parsing"
	FileStatusDone    FileStatus = "done"
	FileStatusError   FileStatus = "error"
)
