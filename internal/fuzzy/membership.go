package fuzzy

// MF is a triangular membership function over a single feature's domain,
// defined by three arena vertices Low <= Mid <= High. The ordering may be
// violated transiently while vertices move, but holds whenever a degree is
// queried.
type MF struct {
	Low  Vertex `json:"low"`
	Mid  Vertex `json:"mid"`
	High Vertex `json:"high"`
}

// Lo returns the position of the low vertex.
func (m MF) Lo(a *Arena) float64 { return a.X(m.Low) }

// Center returns the position of the mid vertex.
func (m MF) Center(a *Arena) float64 { return a.X(m.Mid) }

// Hi returns the position of the high vertex.
func (m MF) Hi(a *Arena) float64 { return a.X(m.High) }

// Covers reports whether x lies inside the closed support [low, high].
func (m MF) Covers(a *Arena, x float64) bool {
	return a.X(m.Low) <= x && x <= a.X(m.High)
}

// Fuzzify returns the degree of membership of x, in [0, 1].
// Zero-width sides (a degenerate feature collapses all vertices onto one
// point) yield full membership exactly at the shared point and zero
// elsewhere, with no division by zero.
func (m MF) Fuzzify(a *Arena, x float64) float64 {
	lo, mid, hi := a.X(m.Low), a.X(m.Mid), a.X(m.High)
	switch {
	case x == mid:
		return 1
	case x <= lo || x >= hi:
		return 0
	case x < mid:
		return (x - lo) / (mid - lo)
	default:
		return (hi - x) / (hi - mid)
	}
}

// Move shifts all three vertices toward x (class agreed) or away from it
// (class disagreed), scaled by rate. Vertices shared with neighboring
// functions move for them too.
func (m MF) Move(a *Arena, x, rate float64, toward bool) {
	a.Shift(m.Low, x, rate, toward)
	a.Shift(m.Mid, x, rate, toward)
	a.Shift(m.High, x, rate, toward)
}
