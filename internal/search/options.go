package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calebds/tracker/internal/schema"
)

const (
	DefaultPer        = 20
	DefaultPage       = 1
	DefaultSort       = "price.asc"
	DefaultAttributes = "sku,name,price,in_stock,url"
)

// Options is the canonical search option surface exposed by the CLI and API.
type Options struct {
	Per        int    `json:"per"`
	Page       int    `json:"page"`
	Filters    string `json:"filters,omitempty"` // "key=value,..."
	Sort       string `json:"sort"`              // "field.direction"
	Attributes string `json:"attributes"`        // comma list of product fields
}

func DefaultOptions() Options {
	return Options{
		Per:        DefaultPer,
		Page:       DefaultPage,
		Sort:       DefaultSort,
		Attributes: DefaultAttributes,
	}
}

// Validate checks bounds; every violation is reported.
func (o Options) Validate() schema.ValidationResult {
	var res schema.ValidationResult

	if o.Per < 1 || o.Per > 100 {
		res.Issues = append(res.Issues, schema.ValidationIssue{
			Field:   schema.OptionPer,
			Code:    "out_of_range",
			Message: fmt.Sprintf("per must be between 1 and 100, got %d", o.Per),
		})
	}
	if o.Page < 1 {
		res.Issues = append(res.Issues, schema.ValidationIssue{
			Field:   schema.OptionPage,
			Code:    "out_of_range",
			Message: fmt.Sprintf("page must be >= 1, got %d", o.Page),
		})
	}
	if s := strings.TrimSpace(o.Sort); s != "" {
		if field, _, ok := strings.Cut(s, "."); !ok || strings.TrimSpace(field) == "" {
			res.Issues = append(res.Issues, schema.ValidationIssue{
				Field:   schema.OptionSort,
				Code:    "invalid_sort",
				Message: fmt.Sprintf("sort must look like field.direction (e.g. %q), got %q", DefaultSort, s),
			})
		}
	}

	return res
}

// Canonical renders the options as the canonical raw option map the mapping
// engine operates on. Zero-valued options fall back to their defaults so the
// retailer always receives a complete request.
func (o Options) Canonical() map[string]any {
	per := o.Per
	if per == 0 {
		per = DefaultPer
	}
	page := o.Page
	if page == 0 {
		page = DefaultPage
	}
	sort := o.Sort
	if sort == "" {
		sort = DefaultSort
	}
	attrs := o.Attributes
	if attrs == "" {
		attrs = DefaultAttributes
	}

	out := map[string]any{
		schema.OptionPer:        strconv.Itoa(per),
		schema.OptionPage:       strconv.Itoa(page),
		schema.OptionSort:       sort,
		schema.OptionAttributes: attrs,
	}
	if strings.TrimSpace(o.Filters) != "" {
		out[schema.OptionFilters] = o.Filters
	}
	return out
}
