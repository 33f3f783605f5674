package services

import "errors"

// Sentinel errors handlers branch on.
var (
	// ErrInvalidCredentials hides whether the email or the password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedSession means the provider session carries no order
	// reference in its metadata.
	ErrMalformedSession = errors.New("checkout session missing order reference")

	// ErrInvalidOrderStatus rejects a status outside the known set.
	ErrInvalidOrderStatus = errors.New("invalid order status")

	// ErrBookPublished blocks deletion of a published book.
	ErrBookPublished = errors.New("book is published and cannot be deleted")
)
