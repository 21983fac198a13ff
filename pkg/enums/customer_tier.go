package enums

// CustomerTier is the loyalty rank derived from a customer's point balance.
type CustomerTier string

const (
	CustomerTierRegular  CustomerTier = "regular"
	CustomerTierSilver   CustomerTier = "silver"
	CustomerTierGold     CustomerTier = "gold"
	CustomerTierPlatinum CustomerTier = "platinum"
)

// Tier thresholds are boundary-inclusive: exactly 500 points is silver.
const (
	TierSilverThreshold   = 500
	TierGoldThreshold     = 2000
	TierPlatinumThreshold = 5000
)

var validCustomerTiers = []CustomerTier{
	CustomerTierRegular,
	CustomerTierSilver,
	CustomerTierGold,
	CustomerTierPlatinum,
}

// String implements fmt.Stringer.
func (c CustomerTier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerTier.
func (c CustomerTier) IsValid() bool {
	for _, candidate := range validCustomerTiers {
		if c == candidate {
			return true
		}
	}
	return false
}

// TierForPoints maps a point balance onto the fixed threshold table.
func TierForPoints(points int64) CustomerTier {
	switch {
	case points >= TierPlatinumThreshold:
		return CustomerTierPlatinum
	case points >= TierGoldThreshold:
		return CustomerTierGold
	case points >= TierSilverThreshold:
		return CustomerTierSilver
	default:
		return CustomerTierRegular
	}
}

// CustomerPointType marks a loyalty ledger entry as accrual or spend.
type CustomerPointType string

const (
	CustomerPointEarn   CustomerPointType = "earn"
	CustomerPointRedeem CustomerPointType = "redeem"
)

// String implements fmt.Stringer.
func (c CustomerPointType) String() string {
	return string(c)
}
