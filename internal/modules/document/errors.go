package document

import "errors"

var (
	ErrNotFound        = errors.New("document not found")
	ErrModuleNotFound  = errors.New("module not found")
	ErrNotPermitted    = errors.New("not permitted")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidCategory = errors.New("invalid category")
)
