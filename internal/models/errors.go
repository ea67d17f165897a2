package models

import "errors"

// Custom errors
var (
	ErrInvalidOdds       = errors.New("invalid odds: prices must be finite and greater than 1")
	ErrInvalidLine       = errors.New("invalid market line")
	ErrNoConsistentModel = errors.New("no consistent model for the supplied prices")
	ErrUnpriceable       = errors.New("market cannot be priced from the calibrated model")
)
