package timekeeping

import "errors"

// Timekeeping domain errors
var (
	// Sequence-policy violations
	ErrDuplicateCheckin  = errors.New("already checked in for this work date")
	ErrDuplicateCheckout = errors.New("already checked out for this work date")
	ErrMissingCheckin    = errors.New("cannot check out without a checkin first")

	// General errors
	ErrLogNotFound         = errors.New("timekeeping log not found")
	ErrLeaveMarkerNotFound = errors.New("leave marker not found")
)
