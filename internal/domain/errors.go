package domain

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("required fields are missing")
	ErrExportFailed  = errors.New("order placed locally but not exported")
	ErrNotSignedIn   = errors.New("not signed in")
	ErrKeyNotFound   = errors.New("key not found")
	ErrUnknownDriver = errors.New("unknown store driver")
)
