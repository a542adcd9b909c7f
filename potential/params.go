/*
Package potential derives a distance-dependent statistical potential for
residue pairs of RNA structures by inverse Boltzmann statistics.

Distances between the reference atoms of residues are counted in a
histogram per base-pair type and in a reference histogram of all pairs.
Both are normalized to frequencies, and the score of a pair type in a
distance bin is -ln(observed / reference): negative where the pair type is
enriched relative to all pairs at that distance, positive where it is
depleted.
*/
package potential

const (
	// MinGap is the minimum sequence separation between two residues of a
	// pair. Residues closer than this along the chain are constrained by
	// backbone geometry and carry no information about tertiary contacts.
	MinGap = 4

	// DefaultBins is the number of unit width distance bins, covering
	// [0, 20) Angstroms.
	DefaultBins = 20

	// MaxScore caps scores from above. Very favorable (negative) scores are
	// never clamped.
	MaxScore = 10.0

	// FloorFrequency replaces zero frequencies so that ratios and logarithms
	// stay finite: such an event is treated as near-impossible, not
	// impossible.
	FloorFrequency = 1e-10
)

// PairKeys are the recognized canonical base-pair types over ACGU.
var PairKeys = []string{"AA", "AC", "AG", "AU", "CC", "CG", "CU", "GG", "GU", "UU"}

// Params holds the numeric parameters shared by training and scoring.
type Params struct {
	MinGap    int
	Histogram Histogram
	MaxScore  float64
	Floor     float64
	// Keys are the pair keys that receive observed counts and scores.
	Keys []string
}

// DefaultParams returns the parameters of the reference corpus.
func DefaultParams() Params {
	keys := make([]string, len(PairKeys))
	copy(keys, PairKeys)
	return Params{
		MinGap:    MinGap,
		Histogram: Histogram{Bins: DefaultBins, Width: 1},
		MaxScore:  MaxScore,
		Floor:     FloorFrequency,
		Keys:      keys,
	}
}
