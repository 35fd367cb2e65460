package database

import (
	"time"
)

// Favorite is a saved listing snapshot. ListingID is the stable id derived
// by the normalizer, which is what the front end matches favorites against.
type Favorite struct {
	ID                string     `json:"id"`
	ListingID         string     `json:"listingId"`
	Title             string     `json:"title"`
	Brand             string     `json:"brand"`
	PartType          string     `json:"partType"`
	Condition         string     `json:"condition"`
	Price             float64    `json:"price"`
	Shipping          string     `json:"shipping"`
	Image             string     `json:"image"`
	Link              string     `json:"link"`
	Source            string     `json:"source"`
	Description       string     `json:"description,omitempty"`
	DescriptionStatus string     `json:"descriptionStatus"` // pending, success, failed, skipped
	CreatedAt         time.Time  `json:"createdAt"`
}

// Watch is a saved search that the scheduler re-runs to track prices.
type Watch struct {
	ID            string     `json:"id"`
	Year          string     `json:"year,omitempty"`
	Make          string     `json:"make,omitempty"`
	Model         string     `json:"model,omitempty"`
	Part          string     `json:"part,omitempty"`
	QueryText     string     `json:"queryText,omitempty"`
	BestPrice     float64    `json:"bestPrice"`
	LastPrice     float64    `json:"lastPrice"`
	LastCheckedAt *time.Time `json:"lastCheckedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// WatchAlert records a price drop observed for a watch.
type WatchAlert struct {
	ID        string    `json:"id"`
	WatchID   string    `json:"watchId"`
	ListingID string    `json:"listingId"`
	Title     string    `json:"title"`
	OldPrice  float64   `json:"oldPrice"`
	NewPrice  float64   `json:"newPrice"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}
