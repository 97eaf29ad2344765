package maintenance

import "errors"

var (
	ErrRecordNotFound = errors.New("maintenance record not found")
	ErrDateRequired   = errors.New("maintenance date is required")
	ErrTruckRequired  = errors.New("truck id is required")
)
