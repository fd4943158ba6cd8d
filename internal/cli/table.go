package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/schema"
)

// RenderResults prints result items as a table (columns from the first item,
// identity fields first) followed by the raw pagination descriptor.
func RenderResults(w io.Writer, results domain.SearchResults) {
	if len(results.Items) == 0 {
		fmt.Fprintln(w, "no results")
	} else {
		columns := resultColumns(results.Items[0])

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, col)
		}
		fmt.Fprintln(tw)

		for _, item := range results.Items {
			for i, col := range columns {
				if i > 0 {
					fmt.Fprint(tw, "\t")
				}
				fmt.Fprint(tw, cellValue(item[col]))
			}
			fmt.Fprintln(tw)
		}
		_ = tw.Flush()
	}

	if len(results.Pagination) > 0 {
		fmt.Fprintln(w, string(results.Pagination))
	}
}

func resultColumns(first map[string]any) []string {
	rest := make([]string, 0, len(first))
	for k := range first {
		if k == schema.FieldSKU || k == schema.FieldName {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append([]string{schema.FieldSKU, schema.FieldName}, rest...)
}

func cellValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
