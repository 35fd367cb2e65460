package ranking

import (
	"strings"
)

// classifyPartType matches a lowercased listing title against the searched
// part and the fixed keyword sets. With no searched part the title alone is
// classified, in priority order major > standard > accessory.
func classifyPartType(titleLower, searchedPart string) PartTypeMatch {
	if searchedPart == "" {
		return classifyTitle(titleLower)
	}

	partLower := strings.ToLower(strings.TrimSpace(searchedPart))
	if partLower == "" {
		return classifyTitle(titleLower)
	}

	if strings.Contains(titleLower, partLower) {
		// A title that matches the searched part but also carries an
		// accessory keyword the user did not ask for is an accessory to
		// the part, not the part itself.
		if hasAccessoryNotInPart(titleLower, partLower) {
			return PartTypeMatch{Kind: PartTypeStandard, Score: scorePartStandard}
		}
		return PartTypeMatch{Kind: PartTypeExact, Score: scorePartExact}
	}

	if containsAny(partLower, majorKeywords) && containsAny(titleLower, majorKeywords) {
		return PartTypeMatch{Kind: PartTypeMajor, Score: scorePartMajor}
	}
	if containsAny(partLower, standardKeywords) && containsAny(titleLower, standardKeywords) {
		return PartTypeMatch{Kind: PartTypeStandard, Score: scorePartStandard}
	}
	if containsAny(titleLower, accessoryKeywords) {
		return PartTypeMatch{Kind: PartTypeAccessory, Score: scorePartAccessory}
	}

	return PartTypeMatch{Kind: PartTypeUnknown, Score: 0}
}

func classifyTitle(titleLower string) PartTypeMatch {
	if containsAny(titleLower, majorKeywords) {
		return PartTypeMatch{Kind: PartTypeMajor, Score: scorePartMajor}
	}
	if containsAny(titleLower, standardKeywords) {
		return PartTypeMatch{Kind: PartTypeStandard, Score: scorePartStandard}
	}
	if containsAny(titleLower, accessoryKeywords) {
		return PartTypeMatch{Kind: PartTypeAccessory, Score: scorePartAccessory}
	}
	return PartTypeMatch{Kind: PartTypeUnknown, Score: 0}
}

func hasAccessoryNotInPart(titleLower, partLower string) bool {
	for _, keyword := range accessoryKeywords {
		if strings.Contains(titleLower, keyword) && !strings.Contains(partLower, keyword) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
