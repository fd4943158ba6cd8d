package schema

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// ParsePositional maps an ordered argument list to the canonical attribute set
// [name, sku, url, price, in_stock]. Empty slots are skipped. Coercion failures
// (price, in_stock) are reported as validation issues on that field; they do not
// stop the remaining slots from being read.
func ParsePositional(args []string) (map[string]any, ValidationResult) {
	var res ValidationResult
	attrs := make(map[string]any, len(args))

	fields := PositionalFields()
	for i, raw := range args {
		if i >= len(fields) {
			addIssue(&res, "arguments", "too_many", "at most 5 product values are accepted (name, sku, url, price, in_stock)")
			break
		}

		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}

		field := fields[i]
		switch field {
		case FieldPrice:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				addIssue(&res, FieldPrice, "invalid_integer", "price must be an integer (minor currency units)")
				continue
			}
			attrs[field] = n
		case FieldInStock:
			b, err := strconv.ParseBool(v)
			if err != nil {
				addIssue(&res, FieldInStock, "invalid_bool", "in_stock must be true or false")
				continue
			}
			attrs[field] = b
		default:
			attrs[field] = v
		}
	}

	return attrs, res
}

type UnknownKeyWarning struct {
	UnknownKeys []string `json:"unknown_keys"`
}

type ParseResult struct {
	Attributes map[string]any
	Warnings   UnknownKeyWarning
}

// ParseAttributesAllowUnknown decodes a single JSON product object into a
// canonical attribute map. Unknown keys are collected and reported, never
// silently dropped.
func ParseAttributesAllowUnknown(body []byte) (ParseResult, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ParseResult{}, err
	}

	attrs, unknown := parseSingleObject(obj)
	return ParseResult{
		Attributes: attrs,
		Warnings:   UnknownKeyWarning{UnknownKeys: setToSortedSlice(unknown)},
	}, nil
}

// ParseAttributeListAllowUnknown decodes a JSON array of product objects.
// Unknown keys are aggregated across items.
func ParseAttributeListAllowUnknown(body []byte) ([]map[string]any, UnknownKeyWarning, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	var rawItems []map[string]json.RawMessage
	if err := dec.Decode(&rawItems); err != nil {
		return nil, UnknownKeyWarning{}, err
	}

	unknown := make(map[string]struct{})
	items := make([]map[string]any, 0, len(rawItems))

	for _, obj := range rawItems {
		attrs, itemUnknown, err := parseObject(obj)
		if err != nil {
			return nil, UnknownKeyWarning{}, err
		}
		for k := range itemUnknown {
			unknown[k] = struct{}{}
		}
		items = append(items, attrs)
	}

	return items, UnknownKeyWarning{UnknownKeys: setToSortedSlice(unknown)}, nil
}

func parseSingleObject(obj map[string]json.RawMessage) (map[string]any, map[string]struct{}) {
	attrs, unknown, _ := parseObject(obj)
	return attrs, unknown
}

func parseObject(obj map[string]json.RawMessage) (map[string]any, map[string]struct{}, error) {
	known := knownFields()
	unknown := make(map[string]struct{})
	attrs := make(map[string]any, len(obj))

	for key, raw := range obj {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, ok := known[k]; !ok {
			unknown[k] = struct{}{}
			continue
		}

		var v any
		// Validation catches wrong types later; decoding into any never fails
		// for valid JSON values.
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, nil, err
		}
		attrs[k] = v
	}

	return attrs, unknown, nil
}

func setToSortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
