package enrollment

import "errors"

var (
	ErrModuleNotFound   = errors.New("module not found")
	ErrModuleInactive   = errors.New("module is not active")
	ErrEnrollmentClosed = errors.New("enrollment is closed for this module")
	ErrModuleFull       = errors.New("module has reached its capacity")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this module")
	ErrNoActiveYear     = errors.New("no active academic year")
	ErrNotEnrolled      = errors.New("no active enrollment found")
)
