package compose

import "github.com/Inesh-volunteer/graphbook/internal/scope"

// Interface accumulates, per scope, the variable names that scope must
// declare as inputs and outputs. Entries are insertion-ordered and
// deduplicated. It is written only during the propagation phase and
// read-only for every later phase.
type Interface struct {
	entries map[string]*ifaceEntry
}

type ifaceEntry struct {
	inputs  orderedNames
	outputs orderedNames
}

// orderedNames is a first-seen-order string set.
type orderedNames struct {
	order []string
	seen  map[string]struct{}
}

func (s *orderedNames) add(name string) {
	if _, ok := s.seen[name]; ok {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *orderedNames) has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// NewInterface returns an empty accumulator.
func NewInterface() *Interface {
	return &Interface{entries: make(map[string]*ifaceEntry)}
}

func (f *Interface) entry(p scope.Path) *ifaceEntry {
	key := p.String()
	e, ok := f.entries[key]
	if !ok {
		e = &ifaceEntry{}
		f.entries[key] = e
	}
	return e
}

// AddInput records varName as a required input of scope p. Idempotent.
func (f *Interface) AddInput(p scope.Path, varName string) {
	f.entry(p).inputs.add(varName)
}

// AddOutput records varName as a required output of scope p. Idempotent.
func (f *Interface) AddOutput(p scope.Path, varName string) {
	f.entry(p).outputs.add(varName)
}

// Inputs returns the required inputs of p in first-seen order.
func (f *Interface) Inputs(p scope.Path) []string {
	if e, ok := f.entries[p.String()]; ok {
		return e.inputs.order
	}
	return nil
}

// Outputs returns the required outputs of p in first-seen order.
func (f *Interface) Outputs(p scope.Path) []string {
	if e, ok := f.entries[p.String()]; ok {
		return e.outputs.order
	}
	return nil
}

// HasInput reports whether varName is a required input of p.
func (f *Interface) HasInput(p scope.Path, varName string) bool {
	e, ok := f.entries[p.String()]
	return ok && e.inputs.has(varName)
}

// HasOutput reports whether varName is a required output of p.
func (f *Interface) HasOutput(p scope.Path, varName string) bool {
	e, ok := f.entries[p.String()]
	return ok && e.outputs.has(varName)
}
