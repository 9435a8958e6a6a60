package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrInvalidRole      = errors.New("role must be employee, manager or hr")
)
