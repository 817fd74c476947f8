package models

// CartProduct is the product snapshot embedded in a cart line. It is a
// trimmed copy taken at add-to-cart time; the catalog remains authoritative.
type CartProduct struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price Money   `json:"price"`
	Stock int     `json:"stock"`
	Image *string `json:"image"`
}

type CartItem struct {
	ID         int         `json:"id"`
	Product    CartProduct `json:"product"`
	Quantity   int         `json:"quantity"`
	TotalPrice Money       `json:"total_price"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

// CartSummary is the GET /cart payload: the lines plus server-computed totals.
type CartSummary struct {
	Data      []CartItem `json:"data"`
	Total     Money      `json:"total"`
	ItemCount int        `json:"item_count"`
}

type AddToCartRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// StockValidationItem is the server-computed per-line stock snapshot from
// GET /cart/validate-stock. It is never persisted client-side beyond the
// current report.
type StockValidationItem struct {
	ProductID      int    `json:"product_id"`
	Name           string `json:"name"`
	AvailableStock int    `json:"available_stock"`
	CartQuantity   int    `json:"cart_quantity"`
}

// Oversold reports whether the cart asks for more units than are available.
func (s StockValidationItem) Oversold() bool {
	return s.CartQuantity > s.AvailableStock
}
