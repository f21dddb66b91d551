// hwerr/errors.go
package hwerr

import "errors"

var (
	// Bus / device plane
	ErrDeviceNotFound    = errors.New("device_not_found")
	ErrDuplicateAddress  = errors.New("duplicate_address")
	ErrUnknownRegister   = errors.New("unknown_register")
	ErrShortRead         = errors.New("short_read")
	ErrNoRegisterPointer = errors.New("no_register_pointer")

	// Pin plane
	ErrUndefinedAlias = errors.New("undefined_alias")

	// Tasks
	ErrWatchdogFault = errors.New("watchdog_fault")
	ErrInvalidPeriod = errors.New("invalid_period")

	// Build/config
	ErrMissingCallback = errors.New("missing_callback")
	ErrMissingDuty     = errors.New("missing_duty")
	ErrLengthMismatch  = errors.New("length_mismatch")
)
