package service

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Everything
// else surfaces as a generic client error carrying only the message.
var (
	// ErrNotFound marks a missing referenced resource (404).
	ErrNotFound = errors.New("resource not found")

	// ErrRequestLinked marks a delete refused because the request is already
	// part of an order. The boundary reports it as a missing-resource
	// response, matching the dashboard's expectations.
	ErrRequestLinked = errors.New("request is linked to an order")

	// ErrNoPriceFound marks a request creation with no effective price.
	ErrNoPriceFound = errors.New("no valid price found for the selected product")
)
