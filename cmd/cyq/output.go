package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// rendered is the outcome of rendering one EXISTS expression.
type rendered struct {
	Cypher     string                 `json:"cypher"`
	Parameters map[string]interface{} `json:"parameters"`
	Variables  []string               `json:"variables"`
}

func writeText(w io.Writer, r rendered) error {
	if _, err := fmt.Fprintln(w, r.Cypher); err != nil {
		return err
	}
	if len(r.Parameters) == 0 && len(r.Variables) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw)
	if len(r.Variables) > 0 {
		_, _ = fmt.Fprintf(tw, "variables\t%s\n", strings.Join(r.Variables, ", "))
	}
	keys := make([]string, 0, len(r.Parameters))
	for k := range r.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(tw, "$%s\t%s\n", k, stringifyValue(r.Parameters[k]))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, r rendered) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func stringifyValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case []byte:
		return string(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}
