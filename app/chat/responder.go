package chat

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/autoxpress/partsearch/app/listing"
	"github.com/autoxpress/partsearch/app/vin"
)

type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentPartSearch Intent = "part_search"
	IntentVINDecode  Intent = "vin_decode"
	IntentShipping   Intent = "shipping"
	IntentReturns    Intent = "returns"
	IntentUnknown    Intent = "unknown"
)

// Reply is the structured answer handed back to the chat widget. When the
// intent resolves to a part search, Vehicle carries the extracted descriptor
// so the widget can run the search itself.
type Reply struct {
	Intent  Intent           `json:"intent"`
	Message string           `json:"message"`
	Vehicle *listing.Vehicle `json:"vehicle,omitempty"`
	VIN     *vin.Decoded     `json:"vin,omitempty"`
}

var intentKeywords = map[Intent][]string{
	IntentGreeting: {"hello", "hi ", "hey", "good morning", "good afternoon"},
	IntentShipping: {"shipping", "deliver", "how long", "arrive"},
	IntentReturns:  {"return", "refund", "exchange", "warranty"},
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
// Any 17-character token is treated as a VIN candidate; vin.Decode rejects
// the ones that only look like one.
var vinPattern = regexp.MustCompile(`\b[A-Za-z0-9]{17}\b`)

var knownMakes = []string{
	"toyota", "honda", "ford", "chevrolet", "nissan", "bmw", "mercedes",
	"volkswagen", "subaru", "dodge", "jeep", "hyundai", "kia", "mazda",
	"lexus", "audi", "volvo", "tesla",
}

// Responder answers chat-widget messages with keyword intent matching. It is
// intentionally simple: the widget only needs enough understanding to route
// the user to a search, a VIN decode, or a canned answer.
type Responder struct {
	titleCaser cases.Caser
}

func NewResponder() *Responder {
	return &Responder{titleCaser: cases.Title(language.English)}
}

func (r *Responder) Run(message string) Reply {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	if candidate := vinPattern.FindString(trimmed); candidate != "" {
		return r.replyVIN(candidate)
	}

	if vehicle, ok := r.extractVehicle(lower); ok {
		return Reply{
			Intent:  IntentPartSearch,
			Message: searchMessage(vehicle),
			Vehicle: &vehicle,
		}
	}

	for _, intent := range []Intent{IntentShipping, IntentReturns, IntentGreeting} {
		if containsAnyKeyword(lower, intentKeywords[intent]) {
			return Reply{Intent: intent, Message: cannedAnswer(intent)}
		}
	}

	return Reply{
		Intent:  IntentUnknown,
		Message: "I can help you find parts. Tell me your vehicle's year, make, and the part you need - for example \"2018 Toyota Camry brake pads\".",
	}
}

func (r *Responder) replyVIN(candidate string) Reply {
	decoded, err := vin.Decode(candidate)
	if err != nil {
		return Reply{
			Intent:  IntentVINDecode,
			Message: fmt.Sprintf("That looks like a VIN, but it didn't check out: %s.", err),
		}
	}

	message := fmt.Sprintf("Decoded your VIN: %d %s, built in %s.",
		decoded.ModelYear, nonEmpty(decoded.Manufacturer, "vehicle"), decoded.Country)

	return Reply{Intent: IntentVINDecode, Message: message, VIN: decoded}
}

func (r *Responder) extractVehicle(lower string) (listing.Vehicle, bool) {
	vehicle := listing.Vehicle{}

	if keyword, ok := listing.MatchPartKeyword(lower); ok {
		vehicle.Part = r.titleCaser.String(keyword)
	}
	if year := yearPattern.FindString(lower); year != "" {
		vehicle.Year = year
	}
	for _, make := range knownMakes {
		if strings.Contains(lower, make) {
			vehicle.Make = r.titleCaser.String(make)
			break
		}
	}

	// A bare year or make alone is not enough to call it a search.
	return vehicle, vehicle.Part != ""
}

func searchMessage(vehicle listing.Vehicle) string {
	descriptor := strings.TrimSpace(strings.Join([]string{vehicle.Year, vehicle.Make}, " "))
	if descriptor == "" {
		return fmt.Sprintf("Searching for %s listings now.", vehicle.Part)
	}
	return fmt.Sprintf("Searching for %s listings for your %s now.", vehicle.Part, descriptor)
}

func cannedAnswer(intent Intent) string {
	switch intent {
	case IntentGreeting:
		return "Hi! I'm the AutoXpress assistant. Tell me what part you're looking for and I'll search eBay, Google Shopping and more."
	case IntentShipping:
		return "Shipping times depend on the seller. Listings with the Free Shipping badge typically arrive within 3-7 business days."
	case IntentReturns:
		return "Returns are handled by the marketplace you buy from. Most eBay sellers accept returns within 30 days."
	default:
		return ""
	}
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
