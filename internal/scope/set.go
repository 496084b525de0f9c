package scope

// Set is an insertion-ordered set of paths. Adding a path that is
// already present has no effect and keeps the original position.
type Set struct {
	order []Path
	seen  map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add inserts p if absent and reports whether it was inserted.
func (s *Set) Add(p Path) bool {
	key := p.String()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, p)
	return true
}

// Contains reports membership.
func (s *Set) Contains(p Path) bool {
	_, ok := s.seen[p.String()]
	return ok
}

// Len returns the number of distinct paths.
func (s *Set) Len() int {
	return len(s.order)
}

// Paths returns the members in insertion order. The returned slice is
// shared; callers must not mutate it.
func (s *Set) Paths() []Path {
	return s.order
}
