// Package extract recovers structured records from the free text a generation
// model returns. The model is not schema-constrained, so everything here is
// best-effort: malformed input is dropped, never reported as an error.
package extract

import "strings"

const delimiter = "|"

// Shape describes one delimited record layout.
type Shape struct {
	// MinColumns is the column count a line must reach before a record is
	// emitted. Shorter lines are discarded.
	MinColumns int
	// Columns is the width every emitted record is normalized to. Extra
	// trailing columns in the source line are ignored.
	Columns int
	// Defaults holds the per-column fallback applied when the sourced
	// column is empty or missing. An empty default leaves the field empty.
	Defaults []string
	// HeaderKeywords identify a header row in a case-insensitive scan.
	HeaderKeywords []string
}

// headerState makes the skip-once behavior explicit: only the first line
// matching a header keyword is consumed as the header. A later data row that
// happens to repeat the header text is a legitimate record.
type headerState int

const (
	awaitingHeader headerState = iota
	consuming
)

// Parse converts a block of generated text into normalized records, one per
// qualifying line, in source order. It tolerates markdown table dressing:
// outer pipes, separator rows and a single header row. It never fails.
func Parse(text string, shape Shape) [][]string {
	var records [][]string
	state := awaitingHeader

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.Contains(line, delimiter) {
			continue
		}
		if isSeparator(line) {
			continue
		}
		if state == awaitingHeader && isHeader(line, shape.HeaderKeywords) {
			state = consuming
			continue
		}

		cols := splitColumns(line)
		if len(cols) < shape.MinColumns {
			continue
		}
		records = append(records, normalize(cols, shape))
	}
	return records
}

// isSeparator reports whether the line is a markdown table separator such as
// "---|---|---".
func isSeparator(line string) bool {
	return strings.Contains(line, "---")
}

func isHeader(line string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// splitColumns trims a single leading and trailing delimiter, so both
// "| a | b |" and "a | b" split the same way, then trims each field.
func splitColumns(line string) []string {
	line = strings.TrimPrefix(line, delimiter)
	line = strings.TrimSuffix(line, delimiter)
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func normalize(cols []string, shape Shape) []string {
	out := make([]string, shape.Columns)
	for i := range out {
		v := ""
		if i < len(cols) {
			v = cols[i]
		}
		if v == "" && i < len(shape.Defaults) {
			v = shape.Defaults[i]
		}
		out[i] = v
	}
	return out
}
