package export

import "strings"

// escapeField wraps a field in double quotes, with internal quotes doubled,
// if and only if it contains a comma, a double quote, or a newline.
// encoding/csv is deliberately not used here: the importers this output
// targets expect quoting only where required, bare \n row separators and no
// trailing newline, none of which csv.Writer guarantees.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func joinRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeField(f)
	}
	return strings.Join(escaped, ",")
}
