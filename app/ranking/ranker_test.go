package ranking

import (
	"reflect"
	"testing"

	"github.com/autoxpress/partsearch/app/listing"
)

var camryQuery = listing.Vehicle{
	Year:  "2018",
	Make:  "Toyota",
	Model: "Camry",
	Part:  "Brake Pads",
}

func TestRankProduct_FullMatchScenario(t *testing.T) {
	ranker := NewRanker()

	l := listing.Listing{
		Title:     "2018 Toyota Camry Brake Pads - New OEM",
		Condition: "New",
		Shipping:  "Free Shipping",
		Price:     79.99,
	}

	// exact year 30 + exact part 40 + new 15 + free shipping 8 + oem 15 =
	// 108, clamped to 100
	ranked := ranker.RankProduct(l, camryQuery)

	if ranked.RelevanceScore != 100 {
		t.Errorf("Expected score 100, got %d", ranked.RelevanceScore)
	}
	if ranked.RelevanceCategory != CategoryHigh {
		t.Errorf("Expected category high, got %s", ranked.RelevanceCategory)
	}
	if ranked.PrimaryBadge == nil {
		t.Fatal("Expected a primary badge")
	}
	if ranked.PrimaryBadge.Type != BadgePartType || ranked.PrimaryBadge.Priority != 1 {
		t.Errorf("Expected Exact Part primary badge, got %+v", ranked.PrimaryBadge)
	}
}

func TestRankProduct_UsedNoOEMScenario(t *testing.T) {
	ranker := NewRanker()

	l := listing.Listing{
		Title:     "2018 Toyota Camry Brake Pads",
		Condition: "Used",
		Shipping:  "$5.99 Shipping",
		Price:     39.99,
	}

	// exact year 30 + exact part 40 + make mention 5; used condition and
	// paid shipping contribute nothing
	ranked := ranker.RankProduct(l, camryQuery)

	if ranked.RelevanceScore != 75 {
		t.Errorf("Expected score 75, got %d", ranked.RelevanceScore)
	}
	if ranked.RelevanceCategory != CategoryMedium {
		t.Errorf("Expected category medium, got %s", ranked.RelevanceCategory)
	}
}

func TestRankProduct_Deterministic(t *testing.T) {
	ranker := NewRanker()

	l := listing.Listing{
		Title:     "2016-2020 Honda Civic Bosch Alternator - Refurbished",
		Condition: "Refurbished",
		Shipping:  "Free Shipping",
	}
	vehicle := listing.Vehicle{Year: "2018", Make: "Honda", Part: "Alternator"}

	first := ranker.RankProduct(l, vehicle)
	second := ranker.RankProduct(l, vehicle)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output on repeated calls, got %+v and %+v", first, second)
	}
}

func TestRankProduct_ScoreBounds(t *testing.T) {
	ranker := NewRanker()

	listings := []listing.Listing{
		{},
		{Title: "Random Junk Drawer Item"},
		{Title: "2018 Toyota Camry Brake Pads - New Genuine OEM Bosch", Condition: "Brand New", Shipping: "Free Shipping"},
	}

	for _, l := range listings {
		ranked := ranker.RankProduct(l, camryQuery)
		if ranked.RelevanceScore < 0 || ranked.RelevanceScore > 100 {
			t.Errorf("Score out of bounds for %q: %d", l.Title, ranked.RelevanceScore)
		}
	}
}

func TestRankProduct_CategoryConsistency(t *testing.T) {
	ranker := NewRanker()

	listings := []listing.Listing{
		{Title: "2018 Toyota Camry Brake Pads - New OEM", Condition: "New", Shipping: "Free Shipping"},
		{Title: "2018 Toyota Camry Brake Pads", Condition: "Used"},
		{Title: "Generic Floor Mat", Condition: "Used"},
		{Title: "Toyota Brake Pads", Condition: "New"},
	}

	for _, l := range listings {
		ranked := ranker.RankProduct(l, camryQuery)

		var expected RelevanceCategory
		switch {
		case ranked.RelevanceScore >= 80:
			expected = CategoryHigh
		case ranked.RelevanceScore >= 50:
			expected = CategoryMedium
		default:
			expected = CategoryLow
		}

		if ranked.RelevanceCategory != expected {
			t.Errorf("Title %q score %d: expected category %s, got %s",
				l.Title, ranked.RelevanceScore, expected, ranked.RelevanceCategory)
		}
	}
}

func TestRankProduct_BadgeOrdering(t *testing.T) {
	ranker := NewRanker()

	l := listing.Listing{
		Title:     "2018 Toyota Camry Brake Pads - New OEM Bosch",
		Condition: "New",
		Shipping:  "Free Shipping",
	}

	ranked := ranker.RankProduct(l, camryQuery)

	if ranked.PrimaryBadge == nil {
		t.Fatal("Expected a primary badge")
	}

	ordered := append([]Badge{*ranked.PrimaryBadge}, ranked.SecondaryBadges...)
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Priority > ordered[i].Priority {
			t.Errorf("Badges not sorted ascending by priority: %+v", ordered)
		}
	}

	if !reflect.DeepEqual(ordered, ranked.AllBadges) {
		t.Errorf("Primary + secondary badges should equal all badges, got %+v vs %+v",
			ordered, ranked.AllBadges)
	}
}

func TestRankProduct_ConditionMonotonicity(t *testing.T) {
	ranker := NewRanker()

	base := listing.Listing{Title: "2018 Toyota Camry Brake Pads"}

	newListing := base
	newListing.Condition = "New"
	usedListing := base
	usedListing.Condition = "Used"

	newScore := ranker.RankProduct(newListing, camryQuery).RelevanceScore
	usedScore := ranker.RankProduct(usedListing, camryQuery).RelevanceScore

	if newScore < usedScore {
		t.Errorf("New condition scored %d, below used condition %d", newScore, usedScore)
	}
}

func TestRankProduct_BestMatchSynthesis(t *testing.T) {
	ranker := NewRanker()

	// High score without an exact-part badge: year + new + free shipping +
	// oem + premium brand but a title that only range-matches the part.
	l := listing.Listing{
		Title:     "2018 Toyota Camry Bosch Rotor Kit Genuine",
		Condition: "New",
		Shipping:  "Free Shipping",
	}
	vehicle := listing.Vehicle{Year: "2018", Make: "Toyota"}

	ranked := ranker.RankProduct(l, vehicle)
	if ranked.RelevanceCategory != CategoryHigh {
		t.Fatalf("Expected high category for this fixture, got %s (score %d)",
			ranked.RelevanceCategory, ranked.RelevanceScore)
	}
	if ranked.PrimaryBadge == nil || ranked.PrimaryBadge.Type != BadgeRelevance {
		t.Errorf("Expected synthesized Best Match primary badge, got %+v", ranked.PrimaryBadge)
	}
}

func TestRankProduct_NoVehicleInfo(t *testing.T) {
	ranker := NewRanker()

	l := listing.Listing{Title: "2018 Toyota Camry Brake Pads - New OEM", Condition: "New"}

	// Absent vehicle fields disable their signals rather than erroring.
	ranked := ranker.RankProduct(l, listing.Vehicle{})

	// standard part keyword 20 + new 15 + oem 15
	if ranked.RelevanceScore != 50 {
		t.Errorf("Expected score 50 with empty vehicle info, got %d", ranked.RelevanceScore)
	}
}

func TestRun_SortedDescendingAndStable(t *testing.T) {
	ranker := NewRanker()

	listings := []listing.Listing{
		{ID: "a", Title: "Floor Mat"},
		{ID: "b", Title: "2018 Toyota Camry Brake Pads - New OEM", Condition: "New", Shipping: "Free Shipping"},
		{ID: "c", Title: "Cup Holder"},
		{ID: "d", Title: "2018 Toyota Camry Brake Pads", Condition: "Used"},
	}

	ranked := ranker.Run(listings, camryQuery)

	if len(ranked) != len(listings) {
		t.Fatalf("Expected %d results, got %d", len(listings), len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].RelevanceScore < ranked[i].RelevanceScore {
			t.Errorf("Results not sorted descending at index %d", i)
		}
	}

	// "a" and "c" score identically; the stable sort keeps input order.
	var equalIDs []string
	for _, r := range ranked {
		if r.ID == "a" || r.ID == "c" {
			equalIDs = append(equalIDs, r.ID)
		}
	}
	if !reflect.DeepEqual(equalIDs, []string{"a", "c"}) {
		t.Errorf("Expected stable order for equal scores, got %v", equalIDs)
	}
}
