package truck

import "errors"

var (
	ErrTruckNotFound      = errors.New("truck not found")
	ErrTruckAlreadyExists = errors.New("truck already exists")
	ErrPlateTaken         = errors.New("plate already registered")
	ErrInvalidStatus      = errors.New("invalid truck status")
	ErrNotBlocked         = errors.New("truck is not blocked")
)
