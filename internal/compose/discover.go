package compose

import (
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// Discovery is the result of scanning the flat operation list: every
// scope path implied by an operation annotation (all strict prefixes
// included, root always present) and the operations each scope exactly
// owns.
type Discovery struct {
	// Scopes holds every known scope in first-seen order, root first,
	// parents always before their children.
	Scopes *scope.Set
	// Owned maps a scope path string to the operations whose exact
	// owning path equals that scope. Root-owned operations are under
	// the empty key.
	Owned map[string][]*flatgraph.Operation
}

// Discover aggregates scopes and ownership from the operation list.
// A graph with no annotated operations degenerates to a root-only
// result.
func Discover(ops []*flatgraph.Operation) *Discovery {
	d := &Discovery{
		Scopes: scope.NewSet(),
		Owned:  make(map[string][]*flatgraph.Operation),
	}
	d.Scopes.Add(scope.Root)
	for _, op := range ops {
		for _, prefix := range op.Path.Prefixes() {
			d.Scopes.Add(prefix)
		}
		key := op.Path.String()
		d.Owned[key] = append(d.Owned[key], op)
	}
	return d
}
