package business

import "errors"

var (
	// ErrBusinessNotFound is returned when no business matches the lookup.
	ErrBusinessNotFound = errors.New("business.repository: business not found")

	// ErrSubscriptionNotFound is returned when a business has no active subscription.
	ErrSubscriptionNotFound = errors.New("business.repository: subscription not found")

	// ErrSlugTaken is returned when the requested slug is already in use.
	ErrSlugTaken = errors.New("business.repository: slug already taken")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("business.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("business.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("business.repository: failed to scan row")
)
