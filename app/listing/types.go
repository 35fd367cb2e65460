package listing

// RawListing is a search result as received from a marketplace provider.
// Field shapes vary between sources; Price is kept verbatim as a string
// since some providers send "$1,234.56" and others send a bare number.
// Anything a provider returns beyond the known fields goes into Extra.
type RawListing struct {
	ID            string
	Title         string
	Brand         string
	PartType      string
	Condition     string
	Price         string
	OriginalPrice string
	Shipping      string
	Image         string
	Link          string
	Source        string
	Extra         map[string]interface{}
}

// Listing is the canonical listing shape produced by the Normalizer.
type Listing struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Brand         string                 `json:"brand"`
	PartType      string                 `json:"partType"`
	Condition     string                 `json:"condition"`
	Price         float64                `json:"price"`
	OriginalPrice float64                `json:"originalPrice"`
	Shipping      string                 `json:"shipping"`
	Image         string                 `json:"image"`
	Link          string                 `json:"link"`
	Source        string                 `json:"source"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Vehicle is the year/make/model/part tuple extracted from a user's search
// query. All fields are optional; an empty field disables the corresponding
// relevance signal.
type Vehicle struct {
	Year  string `json:"year,omitempty" form:"year"`
	Make  string `json:"make,omitempty" form:"make"`
	Model string `json:"model,omitempty" form:"model"`
	Part  string `json:"part,omitempty" form:"part"`
}
