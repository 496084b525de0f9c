// Package compose reconstructs a nested, scoped graph from a flat
// operation list with hierarchical path annotations and variable-named
// links. The pass is single-threaded and purely functional: interface
// propagation writes the only shared accumulator, every later phase
// reads it, and a failure aborts the whole conversion with no partial
// tree.
package compose

import (
	"log"

	"github.com/Inesh-volunteer/graphbook/api"
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/primitive"
	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// Options configures a conversion.
type Options struct {
	// Catalog maps op types to primitive slot roles. Nil means an
	// empty catalog: everything converts, without role names.
	Catalog *primitive.Catalog
}

// Convert turns a flat graph into its nested composite tree and returns
// the root. The root owns the full tree; it is the only node owned by
// the caller.
func Convert(g *flatgraph.Graph, opts Options) (*api.Operation, error) {
	for _, op := range g.Operations {
		if err := op.Path.Validate(); err != nil {
			return nil, err
		}
	}
	idx, err := flatgraph.NewIndex(g)
	if err != nil {
		return nil, err
	}
	cat := opts.Catalog
	if cat == nil {
		cat = primitive.NewCatalog()
	}

	d := Discover(g.Operations)
	iface, groups := propagateAndGroup(g, idx)

	b := newBuilder(g, idx, iface, cat)
	b.assemble(d)
	b.wire(d)
	if err := b.route(d, groups); err != nil {
		return nil, err
	}

	for opName, vars := range idx.UnconsumedOutputs() {
		log.Printf("convert %s: operation %s has unconsumed outputs %v", g.Name, opName, vars)
	}
	for opName, vars := range idx.UnfedInputs() {
		log.Printf("convert %s: operation %s has unfed inputs %v", g.Name, opName, vars)
	}
	return b.node(scope.Root), nil
}
