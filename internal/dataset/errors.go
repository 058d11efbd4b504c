package dataset

import "errors"

var (
	// ErrDataUnavailable wraps every load failure. Callers only need to
	// check for this one.
	ErrDataUnavailable = errors.New("geometry or case data not available")

	ErrMissingGeometry     = errors.New("record has no geometry")
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrEmptyJoin           = errors.New("no case report matched a sector")
	ErrInvalidDate         = errors.New("invalid report date")
	ErrInvalidCaseCount    = errors.New("invalid case count")
)
