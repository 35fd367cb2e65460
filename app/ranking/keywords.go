package ranking

// Read-only keyword and weight tables. Nothing in here is mutated at runtime.

// Scoring weights per signal. Scores are additive and only the total is
// clamped; a listing matching fewer signals simply scores lower.
const (
	scoreExactYear    = 30
	scoreYearRange    = 20
	scorePartExact    = 40
	scorePartMajor    = 30
	scorePartStandard = 20
	scorePartAccessory = 5
	scoreConditionNew   = 15
	scoreConditionRefurb = 8
	scoreFreeShipping = 8
	scoreOEM          = 15
	scoreBrandPremium = 10
	scoreBrandStandard = 5

	maxScore = 100

	highThreshold   = 80
	mediumThreshold = 50
)

// majorKeywords mark complete assemblies and structural components.
var majorKeywords = []string{
	"engine", "transmission", "transaxle", "differential", "axle",
	"chassis", "frame", "body", "complete", "assembly", "drivetrain",
	"subframe", "cylinder head", "short block", "long block",
}

// standardKeywords mark common replacement parts.
var standardKeywords = []string{
	"brake", "rotor", "caliper", "pad", "alternator", "starter",
	"radiator", "suspension", "strut", "shock", "spring", "pump",
	"filter", "sensor", "belt", "hose", "gasket", "bearing", "clutch",
	"injector", "thermostat", "compressor", "condenser", "muffler",
	"exhaust", "headlight", "taillight", "wiper", "coil",
}

// accessoryKeywords mark cosmetic and add-on items. A searched part that
// matches a title only through one of these is downgraded, so a search for
// "bumper" does not treat a "bumper cover" as an exact hit.
var accessoryKeywords = []string{
	"cover", "cap", "trim", "molding", "emblem", "sticker", "decal",
	"protector", "guard", "mat", "organizer", "holder", "bracket",
	"deflector", "spoiler", "mud flap",
}

// oemKeywords in a title indicate an original-equipment part.
var oemKeywords = []string{
	"oem", "genuine", "original", "factory", "manufacturer",
}

// premiumBrands are recognized regardless of vehicle make.
var premiumBrands = []string{
	"bosch", "brembo", "bilstein", "k&n", "moog", "acdelco", "monroe",
}

// premiumBrandsByMake lists first-party and tuner brands per make, keyed by
// lowercased make name.
var premiumBrandsByMake = map[string][]string{
	"ford":       {"motorcraft", "ford racing", "roush"},
	"toyota":     {"trd", "denso", "aisin"},
	"honda":      {"mugen", "hondata", "denso"},
	"chevrolet":  {"gm genuine", "performance parts"},
	"dodge":      {"mopar"},
	"jeep":       {"mopar", "rugged ridge"},
	"nissan":     {"nismo"},
	"subaru":     {"sti"},
	"bmw":        {"dinan", "genuine bmw"},
	"volkswagen": {"oem vw", "genuine vw"},
}
