package track

import "fmt"

// NotFoundError reports a referenced identifier (retailer name, or a sku
// selected for tracking) that does not exist in the relevant set. It aborts
// only the current selection, never the session.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
