package ranking

import (
	"github.com/autoxpress/partsearch/app/listing"
)

type BadgeType string

const (
	BadgeRelevance BadgeType = "relevance"
	BadgeYear      BadgeType = "year"
	BadgeYearRange BadgeType = "yearRange"
	BadgePartType  BadgeType = "partType"
	BadgeOEM       BadgeType = "oem"
	BadgeCondition BadgeType = "condition"
	BadgeShipping  BadgeType = "shipping"
	BadgeBrand     BadgeType = "brand"
)

// Badge summarizes one relevance signal for display. Lower priority numbers
// are more important; the badge list is always kept sorted ascending.
type Badge struct {
	Type     BadgeType `json:"type"`
	Label    string    `json:"label"`
	Priority int       `json:"priority"`
}

type RelevanceCategory string

const (
	CategoryHigh   RelevanceCategory = "high"
	CategoryMedium RelevanceCategory = "medium"
	CategoryLow    RelevanceCategory = "low"
)

// RankedListing is a normalized listing annotated with its relevance score,
// category, and badges.
type RankedListing struct {
	listing.Listing
	RelevanceScore    int               `json:"relevanceScore"`
	RelevanceCategory RelevanceCategory `json:"relevanceCategory"`
	PrimaryBadge      *Badge            `json:"primaryBadge"`
	SecondaryBadges   []Badge           `json:"secondaryBadges"`
	AllBadges         []Badge           `json:"allBadges"`
}

// PartTypeKind classifies how a listing's part relates to the searched part.
type PartTypeKind string

const (
	PartTypeExact     PartTypeKind = "exact"
	PartTypeMajor     PartTypeKind = "major"
	PartTypeStandard  PartTypeKind = "standard"
	PartTypeAccessory PartTypeKind = "accessory"
	PartTypeUnknown   PartTypeKind = "unknown"
)

type PartTypeMatch struct {
	Kind  PartTypeKind
	Score int
}

type BrandTier string

const (
	TierPremium  BrandTier = "premium"
	TierStandard BrandTier = "standard"
	TierUnknown  BrandTier = "unknown"
)

type BrandMatch struct {
	Tier  BrandTier
	Score int
}
