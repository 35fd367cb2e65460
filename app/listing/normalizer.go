package listing

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultBrand    = "Unknown"
	DefaultPartType = "Part"
	placeholderImg  = "/images/placeholder-part.png"
)

// partKeywords is scanned in order against lowercased titles to infer a part
// type when the source did not provide one. Multi-word entries come before
// their single-word prefixes so "brake pad" wins over "brake".
var partKeywords = []string{
	"brake pad", "brake rotor", "brake caliper", "wheel bearing",
	"control arm", "tie rod", "cv axle", "coil spring", "shock absorber",
	"catalytic converter", "oxygen sensor", "fuel pump", "water pump",
	"oil filter", "air filter", "cabin filter", "spark plug",
	"ignition coil", "timing belt", "serpentine belt", "head gasket",
	"tail light", "fog light", "door handle", "side mirror",
	"windshield wiper", "alternator", "starter", "radiator", "thermostat",
	"muffler", "exhaust", "turbocharger", "transmission", "clutch",
	"strut", "battery", "headlight", "bumper", "fender", "grille", "hood",
}

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Normalizer converts heterogeneous provider listings into the canonical
// Listing shape. Malformed values degrade to defaults, never to errors.
type Normalizer struct {
	titleCaser cases.Caser
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		titleCaser: cases.Title(language.English),
	}
}

func (n *Normalizer) Run(raws []RawListing) []Listing {
	listings := make([]Listing, 0, len(raws))
	for _, raw := range raws {
		listings = append(listings, n.Normalize(raw))
	}
	return listings
}

func (n *Normalizer) Normalize(raw RawListing) Listing {
	normalized := Listing{
		ID:        raw.ID,
		Title:     raw.Title,
		Brand:     raw.Brand,
		PartType:  raw.PartType,
		Condition: raw.Condition,
		Price:     ParsePrice(raw.Price),
		Shipping:  raw.Shipping,
		Image:     raw.Image,
		Link:      raw.Link,
		Source:    raw.Source,
	}

	normalized.OriginalPrice = ParsePrice(raw.OriginalPrice)
	if normalized.OriginalPrice == 0 {
		normalized.OriginalPrice = normalized.Price
	}

	if normalized.ID == "" {
		normalized.ID = GenerateListingID(raw.Title, raw.Price)
	}
	if normalized.Brand == "" {
		normalized.Brand = DefaultBrand
	}
	if normalized.PartType == "" {
		normalized.PartType = n.inferPartType(raw.Title)
	}
	if normalized.Condition == "" {
		normalized.Condition = "Unknown"
	}
	if normalized.Image == "" {
		normalized.Image = placeholderImg
	}
	if normalized.Link == "" {
		normalized.Link = "#"
	}

	if len(raw.Extra) > 0 {
		normalized.Metadata = make(map[string]interface{}, len(raw.Extra))
		for k, v := range raw.Extra {
			normalized.Metadata[k] = v
		}
	}

	return normalized
}

// ParsePrice strips every character that is not a digit or a decimal point
// and parses the remainder. Unparsable input yields 0.
func ParsePrice(raw string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// GenerateListingID derives a stable identifier from the first 30 characters
// of the title plus the raw price string. Favorites matching depends on two
// calls with the same inputs producing the same id, so the encoding must stay
// deterministic. Distinct listings sharing a title prefix and price collide
// on purpose; dedup relies on it.
func GenerateListingID(title, rawPrice string) string {
	prefix := title
	if len(prefix) > 30 {
		prefix = prefix[:30]
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(prefix + rawPrice))
	return nonAlphanumeric.ReplaceAllString(encoded, "")
}

func (n *Normalizer) inferPartType(title string) string {
	if keyword, ok := MatchPartKeyword(title); ok {
		return n.titleCaser.String(keyword)
	}
	return DefaultPartType
}

// MatchPartKeyword scans text case-insensitively against the part dictionary
// and returns the first matching keyword.
func MatchPartKeyword(text string) (string, bool) {
	textLower := strings.ToLower(text)
	for _, keyword := range partKeywords {
		if strings.Contains(textLower, keyword) {
			return keyword, true
		}
	}
	return "", false
}
