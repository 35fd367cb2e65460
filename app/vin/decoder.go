package vin

import (
	"fmt"
	"strings"
)

// Decoded holds the fields recoverable from a VIN without a manufacturer
// database: the ISO 3779 structural split plus region, country, manufacturer
// and model year lookups.
type Decoded struct {
	VIN          string `json:"vin"`
	WMI          string `json:"wmi"`
	VDS          string `json:"vds"`
	VIS          string `json:"vis"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	Manufacturer string `json:"manufacturer,omitempty"`
	ModelYear    int    `json:"modelYear"`
	SerialNumber string `json:"serialNumber"`
}

// transliteration maps VIN letters to their check-digit values. I, O and Q
// are not valid VIN characters.
var transliteration = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'P': 7, 'R': 9,
	'S': 2, 'T': 3, 'U': 4, 'V': 5, 'W': 6, 'X': 7, 'Y': 8, 'Z': 9,
}

// checkWeights are the per-position weights for the check digit, position 9
// itself carrying weight 0.
var checkWeights = [17]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

// yearCodes maps the model-year character (position 10) to the base year of
// the 1980 cycle. The cycle repeats every 30 years; a letter in position 7
// signals the 2010+ cycle.
var yearCodes = map[byte]int{
	'A': 1980, 'B': 1981, 'C': 1982, 'D': 1983, 'E': 1984, 'F': 1985,
	'G': 1986, 'H': 1987, 'J': 1988, 'K': 1989, 'L': 1990, 'M': 1991,
	'N': 1992, 'P': 1993, 'R': 1994, 'S': 1995, 'T': 1996, 'V': 1997,
	'W': 1998, 'X': 1999, 'Y': 2000,
	'1': 2001, '2': 2002, '3': 2003, '4': 2004, '5': 2005,
	'6': 2006, '7': 2007, '8': 2008, '9': 2009,
}

var regionsByFirstChar = map[byte][2]string{
	'1': {"North America", "United States"},
	'4': {"North America", "United States"},
	'5': {"North America", "United States"},
	'2': {"North America", "Canada"},
	'3': {"North America", "Mexico"},
	'6': {"Oceania", "Australia"},
	'9': {"South America", "Brazil"},
	'J': {"Asia", "Japan"},
	'K': {"Asia", "South Korea"},
	'L': {"Asia", "China"},
	'S': {"Europe", "United Kingdom"},
	'V': {"Europe", "France/Spain"},
	'W': {"Europe", "Germany"},
	'Y': {"Europe", "Sweden/Finland"},
	'Z': {"Europe", "Italy"},
}

// manufacturerPrefixes is checked longest-prefix-first against the WMI.
var manufacturerPrefixes = []struct {
	prefix string
	name   string
}{
	{"1HG", "Honda"},
	{"2HG", "Honda"},
	{"JHM", "Honda"},
	{"JH4", "Acura"},
	{"4T1", "Toyota"},
	{"5TD", "Toyota"},
	{"1N4", "Nissan"},
	{"1FA", "Ford"},
	{"1FT", "Ford"},
	{"3VW", "Volkswagen"},
	{"WVW", "Volkswagen"},
	{"WBA", "BMW"},
	{"WDB", "Mercedes-Benz"},
	{"5YJ", "Tesla"},
	{"SAL", "Land Rover"},
	{"JT", "Toyota"},
	{"JN", "Nissan"},
	{"KM", "Hyundai"},
	{"KN", "Kia"},
	{"YV", "Volvo"},
	{"1G", "General Motors"},
	{"2G", "General Motors"},
	{"1C", "Chrysler"},
	{"2C", "Chrysler"},
	{"WP", "Porsche"},
	{"ZF", "Ferrari"},
}

// Decode validates a VIN and extracts its structural fields. The VIN is
// upcased before validation so user input casing does not matter.
func Decode(raw string) (*Decoded, error) {
	vin := strings.ToUpper(strings.TrimSpace(raw))

	if err := Validate(vin); err != nil {
		return nil, err
	}

	decoded := &Decoded{
		VIN:          vin,
		WMI:          vin[0:3],
		VDS:          vin[3:9],
		VIS:          vin[9:17],
		SerialNumber: vin[11:17],
	}

	if region, ok := regionsByFirstChar[vin[0]]; ok {
		decoded.Region = region[0]
		decoded.Country = region[1]
	} else {
		decoded.Region = "Unknown"
		decoded.Country = "Unknown"
	}

	for _, m := range manufacturerPrefixes {
		if strings.HasPrefix(vin, m.prefix) {
			decoded.Manufacturer = m.name
			break
		}
	}

	decoded.ModelYear = modelYear(vin)

	return decoded, nil
}

// Validate checks length, character set, and the position-9 check digit.
func Validate(vin string) error {
	if len(vin) != 17 {
		return fmt.Errorf("VIN must be 17 characters, got %d", len(vin))
	}

	for i := 0; i < len(vin); i++ {
		c := vin[i]
		if c == 'I' || c == 'O' || c == 'Q' {
			return fmt.Errorf("VIN contains forbidden character %q at position %d", c, i+1)
		}
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')) {
			return fmt.Errorf("VIN contains invalid character %q at position %d", c, i+1)
		}
	}

	if expected := checkDigit(vin); vin[8] != expected {
		return fmt.Errorf("check digit mismatch: expected %q, got %q", expected, vin[8])
	}

	return nil
}

func checkDigit(vin string) byte {
	sum := 0
	for i := 0; i < 17; i++ {
		c := vin[i]
		var value int
		if c >= '0' && c <= '9' {
			value = int(c - '0')
		} else {
			value = transliteration[c]
		}
		sum += value * checkWeights[i]
	}

	remainder := sum % 11
	if remainder == 10 {
		return 'X'
	}
	return byte('0' + remainder)
}

func modelYear(vin string) int {
	base, ok := yearCodes[vin[9]]
	if !ok {
		return 0
	}

	// A letter in position 7 marks the 2010+ cycle on North American VINs.
	if vin[6] >= 'A' && vin[6] <= 'Z' {
		return base + 30
	}
	return base
}
