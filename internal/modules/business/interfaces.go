package business

import "context"

type businessRepo interface {
	SetBusinessSuspended(ctx context.Context, businessID int64, suspended bool) (bool, error)
}
