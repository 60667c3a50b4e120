package core

import "errors"

// Error taxonomy. Components wrap these with fmt.Errorf("...: %w") so callers can tell
// an unreachable API from a malformed response with errors.Is.
var (
	ErrNetwork               = errors.New("network error")
	ErrDecode                = errors.New("malformed response")
	ErrNotFound              = errors.New("not found")
	ErrFilesystem            = errors.New("filesystem error")
	ErrTargetExists          = errors.New("target path already exists")
	ErrClipboard             = errors.New("unable to access clipboard")
	ErrFrontmatterMissing    = errors.New("no frontmatter found")
	ErrFrontmatterMalformed  = errors.New("malformed frontmatter")
	ErrDateMissing           = errors.New("neither 'date' nor 'lastmod' set in frontmatter")
	ErrConfigurationConflict = errors.New("conflicting options")
	ErrMissingMeeting        = errors.New("no meeting given")
)
