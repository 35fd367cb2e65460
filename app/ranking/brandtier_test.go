package ranking

import (
	"testing"
)

func TestEvaluateBrandTier(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		make          string
		expectedTier  BrandTier
		expectedScore int
	}{
		{"universal premium", "brembo front rotors drilled", "Toyota", TierPremium, 10},
		{"universal premium any make", "bosch oxygen sensor upstream", "Kia", TierPremium, 10},
		{"make specific premium", "motorcraft ignition coil set", "Ford", TierPremium, 10},
		{"make specific wrong make", "motorcraft ignition coil set", "Toyota", TierUnknown, 0},
		{"make name mention", "toyota camry water pump", "Toyota", TierStandard, 5},
		{"no make given", "brembo front rotors drilled", "", TierUnknown, 0},
		{"nothing matches", "aftermarket water pump", "Honda", TierUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := evaluateBrandTier(tt.title, tt.make)
			if match.Tier != tt.expectedTier {
				t.Errorf("Expected tier %s, got %s", tt.expectedTier, match.Tier)
			}
			if match.Score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, match.Score)
			}
		})
	}
}
