package models

// Venue represents a bookable campus location. Venues are immutable
// reference data seeded at startup.
type Venue struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	Image    string   `json:"image"`
}
