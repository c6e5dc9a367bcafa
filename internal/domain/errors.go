package domain

import "errors"

var (
	// ErrInvalidOrderInfo is returned when an order update request misses its context or order id
	ErrInvalidOrderInfo = errors.New("invalid order info")

	// ErrUnknownSide is returned when an order carries a side other than buy or sell
	ErrUnknownSide = errors.New("unknown order side")

	// ErrJobLockLost is returned when a worker finishes a job it no longer holds
	ErrJobLockLost = errors.New("job lock lost")
)
