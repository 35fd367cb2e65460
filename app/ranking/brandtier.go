package ranking

import (
	"strings"
)

// evaluateBrandTier looks for a premium brand mention in the title. The
// universal premium list applies to every make; make-specific brands apply
// only when that make was searched. A bare mention of the make itself counts
// as standard tier.
func evaluateBrandTier(titleLower, make string) BrandMatch {
	if make == "" {
		return BrandMatch{Tier: TierUnknown, Score: 0}
	}

	if containsAny(titleLower, premiumBrands) {
		return BrandMatch{Tier: TierPremium, Score: scoreBrandPremium}
	}

	makeLower := strings.ToLower(strings.TrimSpace(make))
	if brands, ok := premiumBrandsByMake[makeLower]; ok {
		if containsAny(titleLower, brands) {
			return BrandMatch{Tier: TierPremium, Score: scoreBrandPremium}
		}
	}

	if strings.Contains(titleLower, makeLower) {
		return BrandMatch{Tier: TierStandard, Score: scoreBrandStandard}
	}

	return BrandMatch{Tier: TierUnknown, Score: 0}
}
