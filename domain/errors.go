package domain

import "errors"

var (
	// ErrCustomerNotFound means the customer id does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrNoPurchaseHistory means the customer exists but has no orders to build
	// a profile from. Callers treat it the same as not found.
	ErrNoPurchaseHistory = errors.New("no purchase history found for this customer")

	// ErrNoRecommendations means the merged result list came out empty.
	ErrNoRecommendations = errors.New("no recommendations available")

	// ErrGenerationUnavailable means the text-generation service is unconfigured,
	// unreachable or answered with a non-2xx status. It is always recovered from
	// locally and never surfaces to API callers.
	ErrGenerationUnavailable = errors.New("text generation service unavailable")

	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
)
