package domain

import "time"

// SubscriptionTier is the subscription level of a business.
type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "free"
	TierPro      SubscriptionTier = "pro"
	TierBusiness SubscriptionTier = "business"
)

// BusinessCategory classifies the kind of service business.
type BusinessCategory string

const (
	CategoryBarbershop BusinessCategory = "barbershop"
	CategorySalon      BusinessCategory = "salon"
	CategoryDental     BusinessCategory = "dental"
	CategorySpa        BusinessCategory = "spa"
	CategoryGym        BusinessCategory = "gym"
	CategoryAuto       BusinessCategory = "auto"
	CategoryTutor      BusinessCategory = "tutor"
	CategoryPhoto      BusinessCategory = "photo"
	CategoryLaundry    BusinessCategory = "laundry"
	CategoryOther      BusinessCategory = "other"
)

// Business is a tenant. It owns its calendar, catalog, roster and
// appointments. The slug is the public booking link and is immutable once
// shared.
type Business struct {
	ID               string
	Name             string
	Slug             string
	Description      *string
	Category         BusinessCategory
	OwnerName        string
	OwnerEmail       string
	Phone            *string
	Address          *string
	IsActive         bool
	SubscriptionTier SubscriptionTier
	CreatedAt        time.Time
}

// Tier returns the subscription tier, defaulting to free when unset.
func (b *Business) Tier() SubscriptionTier {
	if b.SubscriptionTier == "" {
		return TierFree
	}
	return b.SubscriptionTier
}

// Subscription is a tier purchase record for a business.
type Subscription struct {
	ID         string
	BusinessID string
	Tier       SubscriptionTier
	StartDate  time.Time
	EndDate    *time.Time
	Status     string // active, cancelled, expired
	CreatedAt  time.Time
}
