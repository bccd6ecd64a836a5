package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("booking or related entity not found")
	ErrConflict         = errors.New("booking time conflict")
	ErrBlackout         = errors.New("blackout period overlap")
	ErrLeadTime         = errors.New("booking start violates minimum lead time")
	ErrSuspended        = errors.New("business is suspended")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrCancelWindow     = errors.New("cancellation window violated")
)
