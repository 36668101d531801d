package fuzzy

// Vertex addresses one mutable position in an Arena. Adjacent membership
// functions deliberately hold the same Vertex so that repositioning a shared
// boundary is observed by every function referencing it.
type Vertex int

// Arena owns the vertex positions for one model. Membership functions store
// Vertex indices rather than values, so an in-place update here propagates to
// every function holding the index.
type Arena struct {
	xs []float64
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc appends a new vertex at position x and returns its index.
func (a *Arena) Alloc(x float64) Vertex {
	a.xs = append(a.xs, x)
	return Vertex(len(a.xs) - 1)
}

// X returns the current position of v.
func (a *Arena) X(v Vertex) float64 {
	return a.xs[v]
}

// Set repositions v to x.
func (a *Arena) Set(v Vertex, x float64) {
	a.xs[v] = x
}

// Shift moves v toward value (or away from it) by a fraction rate of the
// current distance. Positions move proportionally, so for rates below 1 the
// relative ordering of shifted vertices is preserved.
func (a *Arena) Shift(v Vertex, value, rate float64, toward bool) {
	delta := rate * (value - a.xs[v])
	if !toward {
		delta = -delta
	}
	a.xs[v] += delta
}

// Len returns the number of allocated vertices.
func (a *Arena) Len() int {
	return len(a.xs)
}

// Positions returns a copy of all vertex positions, in allocation order.
// Used for snapshotting and serialization.
func (a *Arena) Positions() []float64 {
	out := make([]float64, len(a.xs))
	copy(out, a.xs)
	return out
}

// Restore replaces the arena contents with the given positions.
func (a *Arena) Restore(xs []float64) {
	a.xs = make([]float64, len(xs))
	copy(a.xs, xs)
}
