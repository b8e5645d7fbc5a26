package order

// Order is created once and never updated. TotalPrice is frozen at
// creation from the unit price visible at that moment (NUMERIC -> string);
// later catalog price changes never touch existing orders.
type Order struct {
	ID           int    `json:"id"`
	ProductID    int    `json:"product_id"`
	Quantity     int    `json:"quantity"`
	TotalPrice   string `json:"total_price"`
	CustomerName string `json:"customer_name"`
}
