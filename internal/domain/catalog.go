package domain

import "time"

// Service is a bookable offering. Services are deactivated rather than
// deleted because historical appointments reference them.
type Service struct {
	ID              string
	BusinessID      string
	Name            string
	Description     *string
	DurationMinutes int
	Price           int64 // IDR, smallest unit
	IsActive        bool
}

// Staff is a member of a business's roster. Same soft-delete rule as Service.
type Staff struct {
	ID         string
	BusinessID string
	Name       string
	Email      *string
	Phone      *string
	IsActive   bool
}

// Customer is a booking contact, deduplicated by phone number within one
// business. Phone numbers are not globally unique.
type Customer struct {
	ID         string
	BusinessID string
	Name       string
	Phone      string
	Email      *string
	Notes      *string
	CreatedAt  time.Time
}
