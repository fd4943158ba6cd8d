package domain

// Product is the canonical tracked item. Identity is (Name, SKU): two attribute
// sets denote the same product iff both match exactly.
type Product struct {
	ID uint64 `json:"id"`

	Name string `json:"name"`
	SKU  string `json:"sku"`

	URL     string `json:"url,omitempty"`
	Price   *int64 `json:"price,omitempty"` // minor currency units
	InStock *bool  `json:"in_stock,omitempty"`
}

// Retailer is a named backend. Retailers are created out-of-band (seed/config);
// this core only looks them up.
type Retailer struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Stock links one Retailer to one Product and carries the retailer-local sku,
// which may differ from the product's canonical sku. At most one row exists per
// (retailer, product) pair; rows are never mutated after creation.
type Stock struct {
	ID         uint64 `json:"id"`
	RetailerID uint64 `json:"retailer_id"`
	ProductID  uint64 `json:"product_id"`
	SKU        string `json:"sku"`
}
