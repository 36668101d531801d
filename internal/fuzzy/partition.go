package fuzzy

// breakPoints is the number of equally spaced points spanning a feature's
// observed range; each consecutive triple of points defines one triangle,
// giving functionsPerFeature functions with ~50% overlap and full coverage.
const (
	breakPoints         = 7
	functionsPerFeature = breakPoints - 2
)

// Partition builds the default membership functions for one feature column.
// Break points are equally spaced over [min, max] of the observed values;
// function n spans points n..n+2 with its peak at point n+1. A degenerate
// column (min == max) collapses every function onto a single point, which
// Fuzzify tolerates.
func Partition(a *Arena, column []float64) []MF {
	lo, hi := column[0], column[0]
	for _, x := range column[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}

	step := (hi - lo) / float64(breakPoints-1)
	points := make([]Vertex, breakPoints)
	for n := range points {
		points[n] = a.Alloc(lo + float64(n)*step)
	}

	mfs := make([]MF, functionsPerFeature)
	for n := range mfs {
		mfs[n] = MF{Low: points[n], Mid: points[n+1], High: points[n+2]}
	}
	return mfs
}
