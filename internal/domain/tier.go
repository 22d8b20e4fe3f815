package domain

// Unlimited marks a tier limit with no cap.
const Unlimited = -1

// LimitKind names a capacity-gated resource.
type LimitKind string

const (
	LimitStaff    LimitKind = "staff"
	LimitServices LimitKind = "services"
)

// TierLimits are the capacity caps of one subscription tier.
type TierLimits struct {
	MaxStaff    int
	MaxServices int
}

var tierLimits = map[SubscriptionTier]TierLimits{
	TierFree:     {MaxStaff: 2, MaxServices: 5},
	TierPro:      {MaxStaff: 10, MaxServices: 20},
	TierBusiness: {MaxStaff: Unlimited, MaxServices: Unlimited},
}

// LimitsForTier returns the caps for a tier. Unknown tiers get the free
// limits.
func LimitsForTier(tier SubscriptionTier) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[TierFree]
}

// Limit returns the cap for one resource kind.
func (l TierLimits) Limit(kind LimitKind) int {
	if kind == LimitStaff {
		return l.MaxStaff
	}
	return l.MaxServices
}

// CheckCapacity reports whether a business on the given tier may add one
// more of kind, given its current count of active rows. The check is
// advisory for rows that already exist: a downgrade never deactivates
// anything retroactively.
func CheckCapacity(tier SubscriptionTier, kind LimitKind, currentCount int) bool {
	limit := LimitsForTier(tier).Limit(kind)
	if limit == Unlimited {
		return true
	}
	return currentCount < limit
}
