package rules

// Repair closes the coverage gaps that pruning leaves between surviving
// membership functions. For every surviving rule's function on every
// feature, it finds the nearest right-hand neighbor among the other
// surviving rules' functions on that feature (the one whose mid sits
// closest at or beyond this function's high) and, when a nonzero gap
// separates them, merges the boundary: the neighbor's low vertex becomes
// this function's mid vertex and this function's high vertex becomes the
// neighbor's mid vertex. Vertices are shared, so the merge also updates any
// rule already referencing them. Merging is a closure: once the gap is
// zero the neighbor search finds nothing left to move, so a second Repair
// is a no-op.
func (s *Set) Repair() {
	for feat := 0; feat < s.Features(); feat++ {
		for _, r := range s.Rules {
			mf := s.MF(r, feat)

			var neighbor *Rule
			dist := 0.0
			for j := range s.Rules {
				other := &s.Rules[j]
				if other.Cell[feat] == r.Cell[feat] {
					continue
				}
				om := s.MF(*other, feat)
				d := om.Center(s.Arena) - mf.Hi(s.Arena)
				if d < 0 {
					continue
				}
				if neighbor == nil || d < dist {
					neighbor, dist = other, d
				}
			}

			if neighbor != nil && dist != 0 {
				nm := s.MF(*neighbor, feat)
				nm.Low = mf.Mid
				mf.High = nm.Mid
			}
		}
	}
}
