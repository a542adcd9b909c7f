package potential

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"lukechampine.com/blake3"
)

// ScoreTable maps a canonical pair key to one score per distance bin, in
// increasing distance order.
type ScoreTable map[string][]float64

// score is the log-odds of observing a pair type at some distance compared
// to any pair at that distance. Non-positive frequencies are replaced by
// floor first, so a bin with no data for either frequency scores 0.
func score(observed, reference, floor, maxScore float64) float64 {
	if observed <= 0 {
		observed = floor
	}
	if reference <= 0 {
		reference = floor
	}
	return math.Min(-math.Log(observed/reference), maxScore)
}

// Derive computes the score table of f for every key in keys. Keys missing
// from f score as if they had never been observed.
func Derive(f FrequencyTable, keys []string, floor, maxScore float64) ScoreTable {
	table := make(ScoreTable, len(keys))
	for _, key := range keys {
		observed, ok := f.Observed[key]
		scores := make([]float64, len(f.Reference))
		for i, ref := range f.Reference {
			obs := floor
			if ok {
				obs = observed[i]
			}
			scores[i] = score(obs, ref, floor, maxScore)
		}
		table[key] = scores
	}
	return table
}

// Train derives a score table from accumulated counts using p.
func Train(c *CountTable, p Params) ScoreTable {
	return Derive(Frequencies(c, p.Floor), p.Keys, p.Floor, p.MaxScore)
}

// Default returns a table in which every key scores maxScore in each of n bins,
// the most unfavorable score possible.
func Default(keys []string, n int, maxScore float64) ScoreTable {
	table := make(ScoreTable, len(keys))
	for _, key := range keys {
		table[key] = DefaultScores(n, maxScore)
	}
	return table
}

// DefaultScores returns n copies of maxScore.
func DefaultScores(n int, maxScore float64) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = maxScore
	}
	return scores
}

// Keys returns the table's pair keys in lexicographic order.
func (t ScoreTable) Keys() []string {
	keys := maps.Keys(t)
	slices.Sort(keys)
	return keys
}

// Lookup returns the score of a pair of residue types at distance, using
// bins of the given width. Distances beyond the table collapse into its last
// bin. The second return value is false, and the score 0, if the pair's key
// is not in the table.
func (t ScoreTable) Lookup(base1, base2 string, distance, width float64) (float64, bool) {
	scores, ok := t[CanonicalKey(base1, base2)]
	if !ok || len(scores) == 0 {
		return 0, false
	}
	return scores[Nearest(distance, width, len(scores))], true
}

// Encode formats scores the way they are persisted: one value per line with
// four decimal digits.
func Encode(scores []float64) []byte {
	var buf bytes.Buffer
	for _, s := range scores {
		fmt.Fprintf(&buf, "%.4f\n", s)
	}
	return buf.Bytes()
}

// Fingerprint returns the hex encoded BLAKE3 digest of the table's persisted
// form. Two tables that persist to the same text have the same fingerprint.
func (t ScoreTable) Fingerprint() string {
	var buf bytes.Buffer
	for _, key := range t.Keys() {
		buf.WriteString(key)
		buf.WriteByte('\n')
		buf.Write(Encode(t[key]))
	}
	sum := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
