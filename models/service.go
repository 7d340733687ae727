package models

// ServiceItem is a priced item offered under a laundry service
// (e.g. "Shirt" under "Dry Cleaning").
type ServiceItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Service is one laundry service from the catalog.
type Service struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Items       []ServiceItem `json:"items"`
}
