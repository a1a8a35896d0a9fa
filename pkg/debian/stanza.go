package debian

import "strings"

const (
	fieldPackage = "Package:"
	fieldDepends = "Depends:"
)

// ParseStanzas splits raw index text into package records. Records
// are separated by a blank line. Within a record the last occurrence
// of a recognized field wins, and one leading space is stripped from
// the value. Continuation lines are not reassembled. Parsing never
// fails: unrecognized lines are skipped and a record with no Package
// field still yields a stanza.
func ParseStanzas(raw string) []Stanza {
	records := strings.Split(raw, "\n\n")
	stanzas := make([]Stanza, 0, len(records))
	for _, record := range records {
		var s Stanza
		for _, line := range strings.Split(record, "\n") {
			if v, ok := strings.CutPrefix(line, fieldPackage); ok {
				s.Package = strings.TrimPrefix(v, " ")
			} else if v, ok := strings.CutPrefix(line, fieldDepends); ok {
				s.Depends = strings.TrimPrefix(v, " ")
				s.HasDepends = true
			}
		}
		stanzas = append(stanzas, s)
	}
	return stanzas
}
