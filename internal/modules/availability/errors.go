package availability

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("business or resource not found")
)
