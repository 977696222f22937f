package services

import "errors"

// Error kinds surfaced by the service layer. Controllers map these to HTTP
// status codes with errors.Is; anything else is a server fault.
var (
	// ErrInvalidRequest marks a request missing required fields.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound marks a missing order, product, or user-visible resource.
	ErrNotFound = errors.New("not found")

	// ErrNothingFulfillable marks a placement where every requested line
	// failed its stock or lookup check.
	ErrNothingFulfillable = errors.New("no in-stock items to order")

	// ErrInsufficientStock marks a placement where every line was rejected
	// purely for lack of stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition marks a status change disallowed for the order's
	// current state or the acting user.
	ErrInvalidTransition = errors.New("invalid status transition")
)
