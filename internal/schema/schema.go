package schema

// Canonical product attribute keys, in positional order.
const (
	FieldName    = "name"
	FieldSKU     = "sku"
	FieldURL     = "url"
	FieldPrice   = "price"
	FieldInStock = "in_stock"
)

// RetailerSKU is an optional per-item key a retailer client may report when its
// local identifier differs from the canonical sku.
const RetailerSKU = "retailer_sku"

// Canonical search option keys.
const (
	OptionPer        = "per"
	OptionPage       = "page"
	OptionFilters    = "filters"
	OptionSort       = "sort"
	OptionAttributes = "attributes"
)

// PositionalFields is the order product attributes take when supplied as a
// positional argument list.
func PositionalFields() []string {
	return []string{FieldName, FieldSKU, FieldURL, FieldPrice, FieldInStock}
}

func knownFields() map[string]struct{} {
	return map[string]struct{}{
		FieldName:    {},
		FieldSKU:     {},
		FieldURL:     {},
		FieldPrice:   {},
		FieldInStock: {},
		RetailerSKU:  {},
	}
}
