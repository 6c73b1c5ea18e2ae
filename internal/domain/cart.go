package domain

// CartLine is one product entry in a buyer's local cart, keyed by ProductID.
type CartLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Quantity  int    `json:"quantity"`
}
