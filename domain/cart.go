package domain

// Product is a catalog entry as served by the backend.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// CartItem is a product plus the chosen quantity. At most one item per
// product ID exists in a cart; Quantity is always in (0, Stock].
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
}

// NewCartItem builds a cart item from a product with the given quantity.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Quantity: quantity,
	}
}
