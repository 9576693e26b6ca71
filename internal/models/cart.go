package models

// CartLine is one product's presence in a cart, as the client engine sees it:
// the persisted row plus descriptive catalog fields copied at enrichment time.
// Display fields are not authoritative and may go stale; Price is the unit
// price captured when the product was added, never re-read from the catalog.
type CartLine struct {
	ProductID   int64   `json:"product_id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CartRow is the persisted shape: what the cart service stores and returns.
// Enrichment back into a CartLine is a client concern.
type CartRow struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type AddCartItemRequest struct {
	ProductID int64   `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Price     float64 `json:"price"     validate:"required,gt=0"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type ReplaceCartItem struct {
	ProductID int64   `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Price     float64 `json:"price"     validate:"gte=0"`
}

type ReplaceCartRequest struct {
	Items []ReplaceCartItem `json:"items" validate:"required,dive"`
}

type CartResponse struct {
	CartItems []CartRow `json:"cartItems"`
}

type ReplaceCartResponse struct {
	Items []ReplaceCartItem `json:"items"`
}
