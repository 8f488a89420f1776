package extract

import "strings"

// Section names emitted by the composite report prompt.
const (
	SectionSummary = "SUMMARY"
	SectionNews    = "NEWS"
	SectionPeople  = "PEOPLE"
	SectionWins    = "WINS"
)

const sectionMarker = "###"

// Section returns the text between the "### <name>" marker line and the next
// marker line (or end of input). A missing section yields an empty string,
// which Parse in turn yields as an empty record set.
func Section(text, name string) string {
	lines := strings.Split(text, "\n")
	var body []string
	inSection := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if marker, ok := sectionName(line); ok {
			if inSection {
				break
			}
			if marker == name {
				inSection = true
			}
			continue
		}
		if inSection {
			body = append(body, raw)
		}
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// sectionName extracts the section name from a marker line.
func sectionName(line string) (string, bool) {
	if !strings.HasPrefix(line, sectionMarker) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, sectionMarker)), true
}
