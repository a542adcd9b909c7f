package evaluate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/TimothyStiles/rnapmf/checks"
	"github.com/TimothyStiles/rnapmf/io/pdb"
	"github.com/mroth/weightedrand"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// DecoyStats compares the energy of a native structure with the energies of
// decoys that share its geometry but not its sequence.
type DecoyStats struct {
	Native Result
	// Energies of each decoy, in generation order.
	Energies []float64
	Mean     float64
	StdDev   float64
	// Z is (native - mean) / stddev, or 0 if every decoy scored the same.
	// Native-like structures have strongly negative Z.
	Z float64
}

// Decoys scores n decoys of atoms. Each decoy keeps every reference atom in
// place and redraws the residue of every RNA base at random, weighted by the
// base composition of the structure itself. Residues outside the RNA
// alphabet are kept as is. The random source is seeded from name, so the
// same name always produces the same decoys.
func (s Scorer) Decoys(name string, atoms []pdb.Atom, n int) (DecoyStats, error) {
	native, err := s.Score(atoms)
	if err != nil {
		return DecoyStats{}, err
	}
	stats := DecoyStats{Native: native}
	if n <= 0 {
		return stats, nil
	}

	chooser, err := compositionChooser(atoms)
	if err != nil {
		return DecoyStats{}, fmt.Errorf("decoys of %s: %w", name, err)
	}
	rng := rand.New(rand.NewSource(int64(murmur3.Sum64([]byte(name)))))

	decoy := make([]pdb.Atom, len(atoms))
	stats.Energies = make([]float64, n)
	for i := 0; i < n; i++ {
		copy(decoy, atoms)
		for j := range decoy {
			if checks.IsRNA(decoy[j].Residue) && len(decoy[j].Residue) == 1 {
				decoy[j].Residue = chooser.PickSource(rng).(string)
			}
		}
		r, err := s.Score(decoy)
		if err != nil {
			return DecoyStats{}, err
		}
		stats.Energies[i] = r.Energy
	}

	stats.Mean, stats.StdDev = stat.MeanStdDev(stats.Energies, nil)
	if math.IsNaN(stats.StdDev) {
		// a single decoy has no spread
		stats.StdDev = 0
	}
	if stats.StdDev > 0 {
		stats.Z = (native.Energy - stats.Mean) / stats.StdDev
	}
	return stats, nil
}

func compositionChooser(atoms []pdb.Atom) (*weightedrand.Chooser, error) {
	residues := make([]string, len(atoms))
	for i, atom := range atoms {
		residues[i] = atom.Residue
	}
	composition := checks.BaseComposition(residues)

	bases := make([]string, 0, len(composition))
	for base := range composition {
		bases = append(bases, base)
	}
	slices.Sort(bases)
	choices := make([]weightedrand.Choice, 0, len(bases))
	for _, base := range bases {
		// Weights are integral; parts per million is plenty of resolution.
		weight := uint(composition[base] * 1e6)
		if weight == 0 {
			weight = 1
		}
		choices = append(choices, weightedrand.NewChoice(base, weight))
	}
	if len(choices) == 0 {
		// No RNA residues: decoys are identical to the native structure.
		choices = append(choices, weightedrand.NewChoice("A", 1))
	}
	return weightedrand.NewChooser(choices...)
}
