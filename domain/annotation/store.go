package annotation

// Store is the ordered collection of committed regions for one image
// session. It is owned by that session and discarded when the operator
// navigates to another image. The zero value is ready to use.
type Store struct {
	regions  []Region
	revision uint64
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Append commits a region at the end of the store.
func (s *Store) Append(r Region) {
	s.regions = append(s.regions, r)
	s.revision++
}

// Undo removes and returns the most recently committed region.
// On an empty store it is a no-op and ok is false.
func (s *Store) Undo() (r Region, ok bool) {
	if len(s.regions) == 0 {
		return Region{}, false
	}
	r = s.regions[len(s.regions)-1]
	s.regions = s.regions[:len(s.regions)-1]
	s.revision++
	return r, true
}

// Clear empties the store and returns how many regions were removed.
func (s *Store) Clear() int {
	n := len(s.regions)
	if n > 0 {
		s.regions = s.regions[:0]
		s.revision++
	}
	return n
}

// Len returns the number of committed regions.
func (s *Store) Len() int { return len(s.regions) }

// Regions returns a copy of the committed regions in store order.
func (s *Store) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Last returns the most recently committed region without removing it.
func (s *Store) Last() (Region, bool) {
	if len(s.regions) == 0 {
		return Region{}, false
	}
	return s.regions[len(s.regions)-1], true
}

// SetLastLabel replaces the label of the most recent region. Center, radius
// and mode stay fixed. Returns false on an empty store.
func (s *Store) SetLastLabel(label string) bool {
	if len(s.regions) == 0 {
		return false
	}
	s.regions[len(s.regions)-1].Label = label
	s.revision++
	return true
}

// Revision increases on every mutation. Callers cache it to detect when the
// composite needs a rebuild.
func (s *Store) Revision() uint64 { return s.revision }

// Rescaled returns the regions with centers and radii multiplied by factor,
// used to project working-image coordinates back to source resolution when
// the working image was downscaled for display.
func (s *Store) Rescaled(factor float64) []Region {
	out := make([]Region, len(s.regions))
	for i, r := range s.regions {
		out[i] = r
		out[i].Center.X = int(float64(r.Center.X) * factor)
		out[i].Center.Y = int(float64(r.Center.Y) * factor)
		out[i].Radius = int(float64(r.Radius) * factor)
	}
	return out
}
