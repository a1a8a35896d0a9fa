package debian

import "strings"

// Depends returns the direct dependencies declared by the named
// package. The second return value reports whether the package was
// found at all: a found package with no Depends field yields an
// empty, non-nil list. When the index lists the same name more than
// once the earliest record wins.
func (idx *Index) Depends(name string) ([]string, bool) {
	// a record with no Package field never matches
	if name == "" {
		return nil, false
	}
	for _, s := range idx.stanzas {
		if s.Package != name {
			continue
		}
		if !s.HasDepends {
			return []string{}, true
		}
		return SplitDepends(s.Depends), true
	}
	return nil, false
}

// SplitDepends splits a raw Depends value into its comma-separated
// specifications. Tokens are whitespace-trimmed but otherwise kept
// verbatim, version constraints and alternatives included. Empty
// tokens from malformed input are preserved.
func SplitDepends(raw string) []string {
	result := strings.Split(raw, ",")
	for i := range result {
		result[i] = strings.TrimSpace(result[i])
	}
	return result
}
