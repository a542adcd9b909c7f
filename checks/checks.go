/*
Package checks provides utilities to check for certain properties of residue
codes and base-pair keys.
*/
package checks

import "strings"

// IsRNABase reports whether base is one of the four RNA nucleotides.
func IsRNABase(base rune) bool {
	switch base {
	case 'A', 'C', 'U', 'G':
		return true
	default:
		return false
	}
}

// accepts a string and checks if it is a valid RNA sequence.
func IsRNA(seq string) bool {
	for _, base := range seq {
		if !IsRNABase(base) {
			return false
		}
	}
	return true
}

// IsCanonicalPairKey reports whether key is two RNA bases in lexicographic
// order, e.g. "AU" but never "UA".
func IsCanonicalPairKey(key string) bool {
	if len(key) != 2 || !IsRNA(key) {
		return false
	}
	return key[0] <= key[1]
}

// BaseComposition returns the fraction of each RNA base among residues.
// Residue codes outside the RNA alphabet are ignored.
func BaseComposition(residues []string) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, residue := range residues {
		residue = strings.ToUpper(residue)
		if len(residue) != 1 || !IsRNA(residue) {
			continue
		}
		counts[residue]++
		total++
	}
	composition := make(map[string]float64, len(counts))
	for base, count := range counts {
		composition[base] = float64(count) / float64(total)
	}
	return composition
}
