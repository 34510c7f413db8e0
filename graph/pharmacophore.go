package graph

import (
	"fmt"
	"sort"
	"strings"
)

// tagPharmacophore marks residues that match one of the parts of pattern.
// The residues are read in (chain, number) order as one sequence, and every
// occurrence of every part is tagged "part N". Later parts win on overlap.
// Patterns with fewer than three parts are ignored.
func tagPharmacophore(residues []*Residue, pattern string) {
	parts := splitPattern(pattern)
	if len(parts) < 3 {
		return
	}
	sorted := make([]*Residue, len(residues))
	copy(sorted, residues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Chain != sorted[j].Chain {
			return sorted[i].Chain < sorted[j].Chain
		}
		return sorted[i].Number < sorted[j].Number
	})
	sequence := make([]byte, len(sorted))
	for i, r := range sorted {
		sequence[i] = byte(r.Abbrev)
	}

	for pi, part := range parts {
		if len(part) == 0 {
			continue
		}
		for j := 0; j+len(part) <= len(sequence); j++ {
			if string(sequence[j:j+len(part)]) != part {
				continue
			}
			for k := 0; k < len(part); k++ {
				sorted[j+k].Pharmacophore = fmt.Sprintf("part %d", pi+1)
			}
		}
	}
}

// splitPattern splits a pharmacophore pattern on en dashes and hyphens.
// Empty parts are kept so that they still count towards the minimum number
// of parts.
func splitPattern(pattern string) []string {
	pattern = strings.TrimSpace(pattern)
	if len(pattern) == 0 {
		return nil
	}
	pattern = strings.ReplaceAll(pattern, "–", "-")
	parts := strings.Split(pattern, "-")
	for i := range parts {
		parts[i] = strings.ToUpper(strings.TrimSpace(parts[i]))
	}
	return parts
}
