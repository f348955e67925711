// Package rank computes fractional ordering keys for sibling groups.
//
// Ranks are plain float64s; Step-sized gaps leave headroom so most inserts
// only touch the moved node. When the midpoint between two neighbors is no
// longer representable the caller renumbers the whole sibling group.
package rank

// Step is the default gap between consecutive siblings after a renumbering.
const Step = 100

// Initial returns the rank for the first node in an empty sibling group.
func Initial() float64 { return Step }

// Before returns a rank strictly less than r.
func Before(r float64) float64 { return r - Step }

// After returns a rank strictly greater than r.
func After(r float64) float64 { return r + Step }

// Between returns a rank strictly between low and high. ok is false when the
// bounds are inverted or float precision is exhausted (the midpoint collides
// with a bound); the sibling group must then be renumbered.
func Between(low, high float64) (float64, bool) {
	if !(low < high) {
		return 0, false
	}
	mid := low + (high-low)/2
	if !(low < mid && mid < high) {
		return 0, false
	}
	return mid, true
}

// ForIndex returns the rank for position i in a fully renumbered group:
// (i+1) * Step.
func ForIndex(i int) float64 { return float64(i+1) * Step }
