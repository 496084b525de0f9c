package compose

import (
	"github.com/Inesh-volunteer/graphbook/api"
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/primitive"
	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// builder carries the state shared by the assembly, wiring and routing
// phases. The Interface is read-only here.
type builder struct {
	graph *flatgraph.Graph
	idx   *flatgraph.Index
	iface *Interface
	cat   *primitive.Catalog

	// nodes maps a scope path string to its composite; root under "".
	nodes map[string]*api.Operation
	// emitted dedups links per composite so the boundary wiring and
	// routing phases never double-add the same link. Keyed by node
	// identity; composite names are not unique when the graph shares
	// its name with a scope.
	emitted map[*api.Operation]map[api.Link]struct{}
}

func newBuilder(g *flatgraph.Graph, idx *flatgraph.Index, iface *Interface, cat *primitive.Catalog) *builder {
	return &builder{
		graph:   g,
		idx:     idx,
		iface:   iface,
		cat:     cat,
		nodes:   make(map[string]*api.Operation),
		emitted: make(map[*api.Operation]map[api.Link]struct{}),
	}
}

func (b *builder) node(p scope.Path) *api.Operation {
	return b.nodes[p.String()]
}

// assemble constructs one composite per discovered scope. The root
// composite carries the graph's own name and its declared external
// interface; every other composite carries the interface the
// propagation phase computed for it. Children at this stage are the
// exactly-owned primitives; nested composites are attached by the
// wiring phase.
func (b *builder) assemble(d *Discovery) {
	for _, p := range d.Scopes.Paths() {
		var name string
		var inputs, outputs []string
		if p.IsRoot() {
			name = b.graph.Name
			inputs = b.graph.Inputs
			outputs = b.graph.Outputs
		} else {
			name = p.String()
			inputs = b.iface.Inputs(p)
			outputs = b.iface.Outputs(p)
		}

		node := &api.Operation{
			Name:          name,
			PrimitiveName: name,
			Type:          api.CompositeOperation,
			Inputs:        asVariables(inputs),
			Outputs:       asVariables(outputs),
		}
		for _, op := range d.Owned[p.String()] {
			node.Operations = append(node.Operations, b.cat.Convert(op))
		}
		b.nodes[p.String()] = node
	}
}

func asVariables(names []string) []api.Variable {
	if len(names) == 0 {
		return nil
	}
	vars := make([]api.Variable, len(names))
	for i, name := range names {
		vars[i] = api.Variable{Name: name}
	}
	return vars
}

// addLink appends a link to a composite unless an identical link is
// already present there.
func (b *builder) addLink(node *api.Operation, link api.Link) {
	seen, ok := b.emitted[node]
	if !ok {
		seen = make(map[api.Link]struct{})
		b.emitted[node] = seen
	}
	if _, dup := seen[link]; dup {
		return
	}
	seen[link] = struct{}{}
	node.Links = append(node.Links, link)
}
