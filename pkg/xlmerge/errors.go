package xlmerge

import (
	"fmt"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/merger"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/parser"
)

var (
	// ErrNoFiles indicates that no source files were given.
	ErrNoFiles = merger.ErrNoFiles
	// ErrNoSelection indicates that no parameter or no node is selected.
	ErrNoSelection = merger.ErrNoSelection
	// ErrInvalidWindow indicates a time window whose start is after its end.
	ErrInvalidWindow = merger.ErrInvalidWindow
	// ErrUnsupportedFormat indicates a source file that is neither xlsx nor csv.
	ErrUnsupportedFormat = parser.ErrUnsupportedFormat
)

// SourceError represents a failure to process one source file.
type SourceError struct {
	File  string
	Stage string // "read", "write"
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.File, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(file, stage string, err error) *SourceError {
	return &SourceError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}
