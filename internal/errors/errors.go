// Package errors holds the error kinds shared by the product store, service and handlers.
package errors

import "errors"

var (
	// ErrInvalidPayload means required fields are missing or malformed.
	ErrInvalidPayload = errors.New("invalid product payload")
	// ErrDuplicateName means a product with the same name already exists.
	ErrDuplicateName = errors.New("product name already exists")
	// ErrProductNotFound covers both unknown and unparsable identifiers.
	ErrProductNotFound = errors.New("product not found")
)
