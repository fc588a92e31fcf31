package supply

// NodeSet is a set of node IDs.
type NodeSet map[string]struct{}

// NewNodeSet builds a set from the given IDs.
func NewNodeSet(ids ...string) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an ID into the set.
func (s NodeSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether the ID is in the set.
func (s NodeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s NodeSet) Len() int {
	return len(s)
}

// IntersectCount returns the size of the intersection of s and other.
func (s NodeSet) IntersectCount(other NodeSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for id := range small {
		if _, ok := large[id]; ok {
			n++
		}
	}
	return n
}

// Intersects reports whether s and other share at least one ID.
func (s NodeSet) Intersects(other NodeSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if _, ok := large[id]; ok {
			return true
		}
	}
	return false
}
