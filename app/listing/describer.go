package listing

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	readability "codeberg.org/readeck/go-readability"
)

// Description length cap for listing detail pages; marketplace pages bury
// the product blurb in a lot of boilerplate, so only the lead is kept.
const maxDescriptionLength = 500

type DescriptionExtractor struct{}

func NewDescriptionExtractor() *DescriptionExtractor {
	return &DescriptionExtractor{}
}

// Run pulls a short plain-text description out of a listing page. The
// article excerpt is preferred; otherwise the readable text content is
// truncated at a word boundary.
func (e *DescriptionExtractor) Run(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	description := strings.TrimSpace(article.Excerpt)
	if description == "" {
		description = strings.TrimSpace(article.TextContent)
	}
	if description == "" {
		return "", fmt.Errorf("no description extracted from HTML data")
	}

	description = collapseWhitespace(description)
	if len(description) > maxDescriptionLength {
		description = truncateAtWord(description, maxDescriptionLength)
	}

	slog.Debug("Description extracted successfully",
		"title", article.Title,
		"description_length", len(description))

	return description, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateAtWord(s string, limit int) string {
	cut := limit
	for cut > 0 && !unicode.IsSpace(rune(s[cut])) {
		cut--
	}
	if cut == 0 {
		cut = limit
	}
	return strings.TrimSpace(s[:cut]) + "…"
}
