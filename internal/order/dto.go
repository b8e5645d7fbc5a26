package order

// CreateOrderRequest is the POST /create-order payload. Pointer fields let
// the handler report which required field is missing instead of silently
// defaulting to zero values.
type CreateOrderRequest struct {
	ProductID    *int    `json:"product_id"`
	Quantity     *int    `json:"quantity"`
	CustomerName *string `json:"customer_name"`
}

// OrderView is the composed create-order response body. Product carries
// the resolved product name, denormalized into the response only — it is
// not stored on the order.
type OrderView struct {
	ID         int    `json:"id"`
	Product    string `json:"product"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
	Customer   string `json:"customer"`
}
