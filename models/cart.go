package models

// CartItem is a single line in the session cart. The backend owns the cart
// record; this is the shape the gateway passes through and totals over.
type CartItem struct {
	ID          string  `json:"_id"`
	ItemName    string  `json:"item"`
	UnitPrice   float64 `json:"price"`
	Quantity    int     `json:"quantity"` // always >= 1
	ServiceRef  string  `json:"service"`
	ServiceName string  `json:"serviceName,omitempty"`
}

// Cart is the backend cart payload for one user.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// Total returns the cart value in rupees.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
