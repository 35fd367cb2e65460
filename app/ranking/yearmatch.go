package ranking

import (
	"regexp"
	"strconv"
)

// Separator whitespace is tolerated: sellers write "2015-2020", "2015 - 2020"
// and "2006 to 2011" interchangeably.
var yearRangePattern = regexp.MustCompile(`(?i)(\d{4})\s*(?:-|to)\s*(\d{4})`)
var yearListPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// yearInRange reports whether the title mentions a year range or year list
// covering the given year. Ranges use union semantics: a title listing
// "2005-2008" and "2012-2015" covers both windows.
func yearInRange(titleLower, year string) bool {
	target, err := strconv.Atoi(year)
	if err != nil {
		return false
	}

	ranges := yearRangePattern.FindAllStringSubmatch(titleLower, -1)
	if len(ranges) > 0 {
		for _, match := range ranges {
			start, err1 := strconv.Atoi(match[1])
			end, err2 := strconv.Atoi(match[2])
			if err1 != nil || err2 != nil {
				continue
			}
			if start <= target && target <= end {
				return true
			}
		}
		return false
	}

	for _, mentioned := range yearListPattern.FindAllString(titleLower, -1) {
		if mentioned == year {
			return true
		}
	}

	return false
}
