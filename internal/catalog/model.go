package catalog

// Product is the catalog's record. Price travels as a decimal string
// (NUMERIC in Postgres) and may be null; only the update endpoint mutates
// it.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    *string `json:"price"`
	Category string  `json:"category"`
}

// CreateProductRequest is the POST /create-product payload.
type CreateProductRequest struct {
	Name     string  `json:"name"`
	Price    *string `json:"price"`
	Category string  `json:"category"`
}

// UpdatePriceRequest is the PUT /update-product/:id payload.
type UpdatePriceRequest struct {
	Price *string `json:"price"`
}
