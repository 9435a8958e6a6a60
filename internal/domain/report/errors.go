package report

import "errors"

var (
	ErrEmptyExport = errors.New("no records in the requested range")
)
