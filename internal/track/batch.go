package track

import (
	"context"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/schema"
)

type ItemOutcome struct {
	SKU    string `json:"sku,omitempty"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"` // "tracked" | "already_tracked" | "rejected" | "error"
	Reason string `json:"reason,omitempty"`

	Issues []schema.ValidationIssue `json:"issues,omitempty"`
}

type BatchSummary struct {
	Received       int `json:"received"`
	Valid          int `json:"valid"`
	Rejected       int `json:"rejected"`
	Tracked        int `json:"tracked"`
	AlreadyTracked int `json:"already_tracked"`
}

type BatchOutput struct {
	Summary BatchSummary  `json:"summary"`
	Items   []ItemOutcome `json:"items"`
}

// TrackBatch validates and tracks a list of attribute sets against one
// retailer. A rejected or failed item never aborts the rest; persistence
// failures are recorded per item and previously committed rows stay committed.
func (w Workflow) TrackBatch(ctx context.Context, items []map[string]any, r domain.Retailer) (BatchOutput, error) {
	out := BatchOutput{
		Summary: BatchSummary{Received: len(items)},
		Items:   make([]ItemOutcome, 0, len(items)),
	}

	for _, attrs := range items {
		oc := ItemOutcome{}
		if s, ok := stringValue(attrs[schema.FieldSKU]); ok {
			oc.SKU = s
		}
		if s, ok := attrs[schema.FieldName].(string); ok {
			oc.Name = s
		}

		res := schema.Validate(attrs)
		if !res.IsValid() {
			out.Summary.Rejected++
			oc.Status = "rejected"
			oc.Reason = "validation_failed"
			oc.Issues = res.Issues
			out.Items = append(out.Items, oc)
			continue
		}
		out.Summary.Valid++

		product, created, err := w.TrackProduct(ctx, attrs, r)
		if err != nil {
			oc.Status = "error"
			oc.Reason = err.Error()
			out.Items = append(out.Items, oc)
			continue
		}
		oc.Name = product.Name

		if created {
			out.Summary.Tracked++
			oc.Status = "tracked"
		} else {
			out.Summary.AlreadyTracked++
			oc.Status = "already_tracked"
		}
		out.Items = append(out.Items, oc)
	}

	return out, nil
}
