package catalog

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateCode     = errors.New("code already in use")
	ErrYearCompleted     = errors.New("academic year already completed")
	ErrInvalidModuleType = errors.New("invalid module type")
)
