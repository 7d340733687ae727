package models

// GeocodeSuggestion is one candidate returned by the geocoding service for a
// free-text address. Ephemeral: discarded once the user picks one.
type GeocodeSuggestion struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// GeoPoint is a resolved coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
