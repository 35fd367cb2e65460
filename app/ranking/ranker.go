package ranking

import (
	"sort"
	"strings"

	"github.com/autoxpress/partsearch/app/listing"
)

// Ranker scores listings against a vehicle descriptor and orders them by
// relevance. It is a pure function of its inputs and the fixed keyword
// tables; there is no I/O anywhere in this package.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Run ranks every listing and returns them sorted descending by score. The
// sort is stable so equal scores keep their input order.
func (r *Ranker) Run(listings []listing.Listing, vehicle listing.Vehicle) []RankedListing {
	ranked := make([]RankedListing, 0, len(listings))
	for _, l := range listings {
		ranked = append(ranked, r.RankProduct(l, vehicle))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	return ranked
}

// RankProduct accumulates the weighted relevance signals for one listing.
// Signals are additive and only the total is clamped at 100; a listing
// matching fewer signals scores lower rather than being rescaled.
func (r *Ranker) RankProduct(l listing.Listing, vehicle listing.Vehicle) RankedListing {
	titleLower := strings.ToLower(l.Title)
	score := 0
	var badges []Badge

	// Year: an exact mention outranks range compatibility, and skips the
	// range check entirely.
	if vehicle.Year != "" {
		if strings.Contains(titleLower, vehicle.Year) {
			score += scoreExactYear
			badges = append(badges, Badge{Type: BadgeYear, Label: "Exact Year", Priority: 2})
		} else if yearInRange(titleLower, vehicle.Year) {
			score += scoreYearRange
			badges = append(badges, Badge{Type: BadgeYearRange, Label: "Year Compatible", Priority: 3})
		}
	}

	partMatch := classifyPartType(titleLower, vehicle.Part)
	score += partMatch.Score
	if partMatch.Kind == PartTypeExact || partMatch.Kind == PartTypeMajor {
		badges = append(badges, Badge{Type: BadgePartType, Label: "Exact Part", Priority: 1})
	}

	conditionLower := strings.ToLower(l.Condition)
	switch {
	case strings.Contains(conditionLower, "new"):
		score += scoreConditionNew
		badges = append(badges, Badge{Type: BadgeCondition, Label: "New", Priority: 4})
	case strings.Contains(conditionLower, "refurbished"):
		score += scoreConditionRefurb
		badges = append(badges, Badge{Type: BadgeCondition, Label: "Refurbished", Priority: 4})
	case strings.Contains(conditionLower, "used"), strings.Contains(conditionLower, "pre-owned"):
		badges = append(badges, Badge{Type: BadgeCondition, Label: "Used", Priority: 4})
	}

	if strings.Contains(strings.ToLower(l.Shipping), "free") {
		score += scoreFreeShipping
		badges = append(badges, Badge{Type: BadgeShipping, Label: "Free Shipping", Priority: 5})
	}

	if containsAny(titleLower, oemKeywords) {
		score += scoreOEM
		badges = append(badges, Badge{Type: BadgeOEM, Label: "OEM", Priority: 2})
	}

	brandMatch := evaluateBrandTier(titleLower, vehicle.Make)
	score += brandMatch.Score
	if brandMatch.Tier == TierPremium {
		badges = append(badges, Badge{Type: BadgeBrand, Label: "Premium Brand", Priority: 3})
	}

	if score > maxScore {
		score = maxScore
	}

	category := CategoryLow
	switch {
	case score >= highThreshold:
		category = CategoryHigh
		if !hasPriorityOneBadge(badges) {
			badges = append(badges, Badge{Type: BadgeRelevance, Label: "Best Match", Priority: 1})
		}
	case score >= mediumThreshold:
		category = CategoryMedium
	}

	sort.SliceStable(badges, func(i, j int) bool {
		return badges[i].Priority < badges[j].Priority
	})

	ranked := RankedListing{
		Listing:           l,
		RelevanceScore:    score,
		RelevanceCategory: category,
		AllBadges:         badges,
	}

	if len(badges) > 0 {
		primary := badges[0]
		ranked.PrimaryBadge = &primary
		ranked.SecondaryBadges = badges[1:]
	}

	return ranked
}

func hasPriorityOneBadge(badges []Badge) bool {
	for _, badge := range badges {
		if badge.Priority == 1 {
			return true
		}
	}
	return false
}
