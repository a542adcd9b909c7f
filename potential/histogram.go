package potential

import "math"

// Histogram is a sequence of contiguous, non-overlapping distance bins of
// equal width. Bin i covers [i*Width, (i+1)*Width).
type Histogram struct {
	Bins  int
	Width float64
}

// Bounds returns the lower (inclusive) and upper (exclusive) limits of bin i.
func (h Histogram) Bounds(i int) (lower, upper float64) {
	lower = float64(i) * h.Width
	return lower, lower + h.Width
}

// Bin returns the index of the bin containing distance. Bins are checked in
// ascending order and the first match wins. The second return value is false
// when distance falls outside every bin; such distances are not counted
// during training.
func (h Histogram) Bin(distance float64) (int, bool) {
	for i := 0; i < h.Bins; i++ {
		lower, upper := h.Bounds(i)
		if lower <= distance && distance < upper {
			return i, true
		}
	}
	return 0, false
}

// Nearest returns the bin used to score distance in a table with n bins.
// Unlike Bin, distances at or beyond the last bin collapse into it rather
// than being dropped.
func Nearest(distance, width float64, n int) int {
	i := int(math.Floor(distance / width))
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
