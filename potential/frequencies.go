package potential

import (
	"gonum.org/v1/gonum/floats"
)

// FrequencyTable holds count histograms normalized to probabilities.
type FrequencyTable struct {
	Observed  map[string][]float64
	Reference []float64
}

// Frequencies normalizes every histogram of c by its own total. A histogram
// whose total is zero becomes floor in every bin.
func Frequencies(c *CountTable, floor float64) FrequencyTable {
	observed := make(map[string][]float64, len(c.Observed))
	for key, counts := range c.Observed {
		observed[key] = normalize(counts, floor)
	}
	return FrequencyTable{
		Observed:  observed,
		Reference: normalize(c.Reference, floor),
	}
}

func normalize(counts []int, floor float64) []float64 {
	freqs := make([]float64, len(counts))
	for i, n := range counts {
		freqs[i] = float64(n)
	}
	total := floats.Sum(freqs)
	if total <= 0 {
		for i := range freqs {
			freqs[i] = floor
		}
		return freqs
	}
	floats.Scale(1/total, freqs)
	return freqs
}
