package driver

import "errors"

var (
	ErrDriverNotFound     = errors.New("driver not found")
	ErrLicenseTaken       = errors.New("license number already registered")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrLicenseRequired    = errors.New("license number is required for drivers")
)
