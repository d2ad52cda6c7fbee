package merger

import "errors"

var (
	// ErrNoFiles indicates that no source tables were supplied.
	ErrNoFiles = errors.New("no source files to merge")
	// ErrNoSelection indicates that the parameter and node selection leaves no columns.
	ErrNoSelection = errors.New("no parameter or node selected")
	// ErrRenameCount indicates that the rename maps do not line up with the sources.
	ErrRenameCount = errors.New("rename map count does not match source count")
	// ErrInvalidWindow indicates a time window whose start is after its end.
	ErrInvalidWindow = errors.New("time window start is after end")
)
