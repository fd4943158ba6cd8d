// Package mapping translates between the canonical vocabulary and a specific
// retailer's vocabulary, in both directions. It is purely functional: no
// retrieval, no shared state, deterministic given tables + input.
package mapping

import (
	"strings"

	"github.com/calebds/tracker/internal/schema"
)

// Engine holds one retailer's two translation tables:
//   - Keys:   canonical search-option key -> retailer option key
//   - Values: canonical product field name -> retailer field name
type Engine struct {
	Keys   map[string]string
	Values map[string]string
}

// MapKeys re-keys every canonical option present in the key table to the
// retailer's name for it, value unchanged. Options absent from the table pass
// through under their canonical key; nothing is dropped.
func (e Engine) MapKeys(options map[string]any) map[string]any {
	out := make(map[string]any, len(options))
	for k, v := range options {
		if mapped, ok := e.Keys[k]; ok {
			out[mapped] = v
			continue
		}
		out[k] = v
	}
	return out
}

// MapValues rewrites option values that embed canonical product field names
// (attribute lists, sort fields) using the value table. String values are
// processed token-wise on commas; a "field.suffix" token (sort direction) maps
// the field segment and keeps the suffix. Non-matching tokens and non-string
// values pass through untouched.
func (e Engine) MapValues(options map[string]any) map[string]any {
	out := make(map[string]any, len(options))
	for k, v := range options {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		out[k] = e.mapTokens(s)
	}
	return out
}

func (e Engine) mapTokens(s string) string {
	tokens := strings.Split(s, ",")
	for i, tok := range tokens {
		tokens[i] = e.mapToken(strings.TrimSpace(tok))
	}
	return strings.Join(tokens, ",")
}

func (e Engine) mapToken(tok string) string {
	if mapped, ok := e.Values[tok]; ok {
		return mapped
	}
	if i := strings.IndexByte(tok, '.'); i > 0 {
		if mapped, ok := e.Values[tok[:i]]; ok {
			return mapped + tok[i:]
		}
	}
	return tok
}

// RequireShowAttributes guarantees the "attributes to return" option includes
// the two identity fields, sku and name, so every result item carries enough to
// deduplicate and track. Each field is checked independently and prepended only
// if missing; neither is ever duplicated. Applied after MapKeys/MapValues, so
// both the option key and the field names are resolved through the tables.
func (e Engine) RequireShowAttributes(options map[string]any) map[string]any {
	attrKey := e.mappedKey(schema.OptionAttributes)
	skuName := e.mappedValue(schema.FieldSKU)
	nameName := e.mappedValue(schema.FieldName)

	out := make(map[string]any, len(options)+1)
	for k, v := range options {
		out[k] = v
	}

	list, _ := out[attrKey].(string)
	if !containsToken(list, nameName) {
		list = prependToken(list, nameName)
	}
	if !containsToken(list, skuName) {
		list = prependToken(list, skuName)
	}
	out[attrKey] = list

	return out
}

// CanonicalizeItems maps result items back to canonical field names by
// reversing the product-attribute table. Keys a retailer reports that have no
// canonical counterpart pass through unchanged, so a client that already speaks
// canonical names round-trips as a no-op.
func (e Engine) CanonicalizeItems(items []map[string]any) []map[string]any {
	if len(items) == 0 {
		return items
	}

	reverse := make(map[string]string, len(e.Values))
	for canonical, native := range e.Values {
		reverse[native] = canonical
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		mapped := make(map[string]any, len(item))
		for k, v := range item {
			if canonical, ok := reverse[k]; ok {
				mapped[canonical] = v
				continue
			}
			mapped[k] = v
		}
		out = append(out, mapped)
	}
	return out
}

func (e Engine) mappedKey(canonical string) string {
	if mapped, ok := e.Keys[canonical]; ok {
		return mapped
	}
	return canonical
}

func (e Engine) mappedValue(canonical string) string {
	if mapped, ok := e.Values[canonical]; ok {
		return mapped
	}
	return canonical
}

func containsToken(list, want string) bool {
	for _, tok := range strings.Split(list, ",") {
		if strings.TrimSpace(tok) == want {
			return true
		}
	}
	return false
}

func prependToken(list, tok string) string {
	if strings.TrimSpace(list) == "" {
		return tok
	}
	return tok + "," + list
}
