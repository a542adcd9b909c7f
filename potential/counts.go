package potential

import (
	"fmt"

	"github.com/TimothyStiles/rnapmf/io/pdb"
	"golang.org/x/exp/slices"
)

// CountTable accumulates distance histograms: one per recognized pair key,
// plus a reference histogram counting every pair regardless of its type.
//
// A CountTable is owned by its caller. Whether it covers a single structure
// or a whole corpus depends only on how many structures are fed to it before
// frequencies are computed; independent tables can be combined with Merge.
// A CountTable is not safe for concurrent use.
type CountTable struct {
	Histogram Histogram
	Observed  map[string][]int
	Reference []int
}

// NewCountTable returns an empty table over histogram h with a zeroed count
// sequence for each key.
func NewCountTable(h Histogram, keys []string) *CountTable {
	observed := make(map[string][]int, len(keys))
	for _, key := range keys {
		observed[key] = make([]int, h.Bins)
	}
	return &CountTable{
		Histogram: h,
		Observed:  observed,
		Reference: make([]int, h.Bins),
	}
}

// Keys returns the table's pair keys in lexicographic order.
func (c *CountTable) Keys() []string {
	keys := make([]string, 0, len(c.Observed))
	for key := range c.Observed {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Observe counts one pair. The reference histogram is incremented for every
// pair whose distance falls in a bin, and the pair's own histogram too when
// its key is recognized. It returns false if the distance falls outside the
// histogram, in which case nothing is counted.
func (c *CountTable) Observe(p Pair) bool {
	bin, ok := c.Histogram.Bin(p.Distance)
	if !ok {
		return false
	}
	if counts, ok := c.Observed[p.Key()]; ok {
		counts[bin]++
	}
	c.Reference[bin]++
	return true
}

// Accumulate counts every pair produced by e and returns how many of them
// fell inside the histogram.
func (c *CountTable) Accumulate(e *Enumerator) int {
	n := 0
	for e.Next() {
		if c.Observe(e.Pair()) {
			n++
		}
	}
	return n
}

// AddStructure enumerates the pairs of one structure's reference atoms with
// the given minimum sequence gap and counts them.
func (c *CountTable) AddStructure(atoms []pdb.Atom, gap int) int {
	return c.Accumulate(NewEnumerator(atoms, gap))
}

// Merge adds the counts of other to c, element by element. Merging is
// commutative and associative, so tables built in parallel may be merged in
// any order. Keys present only in other are added to c.
func (c *CountTable) Merge(other *CountTable) error {
	if other.Histogram != c.Histogram {
		return fmt.Errorf("cannot merge count tables with histograms %+v and %+v",
			c.Histogram, other.Histogram)
	}
	for key, counts := range other.Observed {
		mine, ok := c.Observed[key]
		if !ok {
			mine = make([]int, c.Histogram.Bins)
			c.Observed[key] = mine
		}
		for i, n := range counts {
			mine[i] += n
		}
	}
	for i, n := range other.Reference {
		c.Reference[i] += n
	}
	return nil
}

// Total returns the sum of the counts of key, or of the reference histogram
// if key is empty.
func (c *CountTable) Total(key string) int {
	counts := c.Reference
	if key != "" {
		counts = c.Observed[key]
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
