package schema

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationIssue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Issues []ValidationIssue `json:"issues"`
}

func (r ValidationResult) IsValid() bool {
	return len(r.Issues) == 0
}

// Error adapts an invalid result to the error interface so callers can surface
// the full aggregated failure through normal error returns.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Result.Issues))
	for _, it := range e.Result.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", it.Field, it.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate applies the canonical rule set to a product attribute map. Every
// violated field is reported; validation never stops at the first issue. Valid
// input passes through unaltered.
func Validate(attrs map[string]any) ValidationResult {
	var res ValidationResult

	validateName(&res, attrs[FieldName], true)
	validateSKU(&res, attrs[FieldSKU], true)

	if v, ok := attrs[FieldURL]; ok {
		validateURL(&res, v)
	}
	if v, ok := attrs[FieldPrice]; ok {
		validatePrice(&res, v)
	}
	if v, ok := attrs[FieldInStock]; ok {
		validateInStock(&res, v)
	}

	return res
}

// ValidateField applies the rule for a single canonical field. Used by the
// interactive prompt loop, which re-asks one field at a time.
func ValidateField(field string, value any) ValidationResult {
	var res ValidationResult

	switch field {
	case FieldName:
		validateName(&res, value, true)
	case FieldSKU:
		validateSKU(&res, value, true)
	case FieldURL:
		validateURL(&res, value)
	case FieldPrice:
		validatePrice(&res, value)
	case FieldInStock:
		validateInStock(&res, value)
	default:
		addIssue(&res, field, "unknown_field", fmt.Sprintf("%q is not a canonical product field", field))
	}

	return res
}

func validateName(res *ValidationResult, v any, required bool) {
	s, ok := v.(string)
	if v == nil || (ok && strings.TrimSpace(s) == "") {
		if required {
			addIssue(res, FieldName, "required", "name is required and must be non-empty")
		}
		return
	}
	if !ok {
		addIssue(res, FieldName, "invalid_type", "name must be a string")
	}
}

func validateSKU(res *ValidationResult, v any, required bool) {
	s, ok := v.(string)
	if v == nil || (ok && strings.TrimSpace(s) == "") {
		if required {
			addIssue(res, FieldSKU, "required", "sku is required and must be non-empty")
		}
		return
	}
	if !ok {
		addIssue(res, FieldSKU, "invalid_type", "sku must be a string")
	}
}

func validateURL(res *ValidationResult, v any) {
	if v == nil {
		return
	}
	s, ok := v.(string)
	if !ok {
		addIssue(res, FieldURL, "invalid_type", "url must be a string")
		return
	}
	if strings.TrimSpace(s) == "" {
		return
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		addIssue(res, FieldURL, "invalid_url", fmt.Sprintf("%q is not a valid absolute URL", s))
	}
}

func validatePrice(res *ValidationResult, v any) {
	if v == nil {
		return
	}

	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int64:
		n = t
	case float64:
		// JSON numbers arrive as float64; only whole values are acceptable.
		if t != float64(int64(t)) {
			addIssue(res, FieldPrice, "invalid_integer", "price must be an integer (minor currency units)")
			return
		}
		n = int64(t)
	default:
		addIssue(res, FieldPrice, "invalid_type", "price must be an integer (minor currency units)")
		return
	}

	if n < 0 {
		addIssue(res, FieldPrice, "negative", "price must be >= 0")
	}
}

func validateInStock(res *ValidationResult, v any) {
	if v == nil {
		return
	}
	if _, ok := v.(bool); !ok {
		addIssue(res, FieldInStock, "invalid_type", "in_stock must be a boolean")
	}
}

func addIssue(res *ValidationResult, field, code, message string) {
	res.Issues = append(res.Issues, ValidationIssue{
		Field:   field,
		Code:    code,
		Message: message,
	})
}
