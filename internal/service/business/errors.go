package business

import "errors"

var (
	// ErrBusinessNotFound is returned when no business matches the lookup.
	ErrBusinessNotFound = errors.New("business.service: business not found")

	// ErrSlugTaken is returned when the requested slug is already in use.
	ErrSlugTaken = errors.New("business.service: slug already taken")

	// ErrInvalidSlug is returned when the slug is malformed.
	ErrInvalidSlug = errors.New("business.service: invalid slug")

	// ErrInvalidTier is returned on an unknown subscription tier.
	ErrInvalidTier = errors.New("business.service: invalid subscription tier")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("business.service: invalid input data")

	// ErrInternal is returned on unexpected failures inside the service.
	ErrInternal = errors.New("business.service: internal error")
)
