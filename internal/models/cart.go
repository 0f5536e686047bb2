package models

type CartItem struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	SellerID    string  `json:"sellerId"`
	SellerEmail string  `json:"sellerEmail"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
