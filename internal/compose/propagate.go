package compose

import (
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// propagate classifies the relationship between a producer scope and a
// consumer scope for one variable and records the variable on every
// scope boundary the link crosses. Exactly one case applies:
//
//   - producer at root, consumer nested: downstream. The variable
//     becomes a required input of every ancestor of the consumer from
//     depth 2 through the consumer itself. The depth-1 scope is
//     deliberately skipped; this asymmetry with the upstream case is
//     the source format's existing contract and must not be "fixed"
//     without product-owner signoff.
//   - consumer at root, producer nested: upstream. The variable
//     becomes a required output of every ancestor of the producer from
//     depth 1 through the producer itself.
//   - consumer is an ancestor of the producer: required output of
//     every scope below the consumer down to the producer inclusive.
//   - producer is an ancestor of the consumer: required input of
//     every scope below the producer down to the consumer inclusive.
//   - cross-stream: required output of every producer ancestor outside
//     the common prefix, required input of every consumer ancestor
//     outside it.
//
// Equal scopes are intra-scope links and never reach this function.
// Additions are idempotent and order-preserving.
func propagate(iface *Interface, varName string, producer, consumer scope.Path) {
	switch {
	case producer.IsRoot() && consumer.IsRoot():
		return

	case producer.IsRoot():
		for depth := 2; depth <= consumer.Depth(); depth++ {
			iface.AddInput(consumer.Prefix(depth), varName)
		}

	case consumer.IsRoot():
		for depth := 1; depth <= producer.Depth(); depth++ {
			iface.AddOutput(producer.Prefix(depth), varName)
		}

	case producer.HasPrefix(consumer):
		for depth := consumer.Depth() + 1; depth <= producer.Depth(); depth++ {
			iface.AddOutput(producer.Prefix(depth), varName)
		}

	case consumer.HasPrefix(producer):
		for depth := producer.Depth() + 1; depth <= consumer.Depth(); depth++ {
			iface.AddInput(consumer.Prefix(depth), varName)
		}

	default:
		shared := producer.CommonPrefix(consumer)
		for depth := shared.Depth() + 1; depth <= producer.Depth(); depth++ {
			iface.AddOutput(producer.Prefix(depth), varName)
		}
		for depth := shared.Depth() + 1; depth <= consumer.Depth(); depth++ {
			iface.AddInput(consumer.Prefix(depth), varName)
		}
	}
}

// linkGroups assigns every surviving flat link to the scope that will
// route it: the consumer's owning scope, or root for boundary-consumer
// and root-owned-consumer links.
type linkGroups struct {
	byScope map[string][]flatgraph.Link
}

func (lg *linkGroups) add(p scope.Path, link flatgraph.Link) {
	lg.byScope[p.String()] = append(lg.byScope[p.String()], link)
}

// propagateAndGroup runs the propagation phase over every flat link and
// groups links by routing scope. The returned Interface must not be
// mutated afterwards.
//
// One quirk of the source contract is preserved: a link whose producer
// is a known operation and whose variable is among the graph's declared
// outputs, but whose consumer is not the boundary, is dropped entirely.
func propagateAndGroup(g *flatgraph.Graph, idx *flatgraph.Index) (*Interface, *linkGroups) {
	iface := NewInterface()
	groups := &linkGroups{byScope: make(map[string][]flatgraph.Link)}

	for _, link := range g.Links {
		switch {
		case link.Sink.IsBoundary():
			groups.add(scope.Root, link)
			propagate(iface, link.VarName, pathOf(idx, link.Source), scope.Root)

		case !link.Source.IsBoundary() && g.HasOutput(link.VarName):
			// Dropped: a producer feeding a declared graph output into
			// anything other than the boundary.
			continue

		default:
			sinkPath := idx.Op(link.Sink.Op()).Path
			srcPath := pathOf(idx, link.Source)
			if sinkPath.IsRoot() {
				groups.add(scope.Root, link)
				if !srcPath.IsRoot() {
					propagate(iface, link.VarName, srcPath, scope.Root)
				}
				continue
			}
			groups.add(sinkPath, link)
			if link.Source.IsBoundary() || !srcPath.Equal(sinkPath) {
				propagate(iface, link.VarName, srcPath, sinkPath)
			}
		}
	}
	return iface, groups
}

// pathOf resolves an endpoint's owning scope: root for the boundary,
// the operation's declared path otherwise. Endpoints are validated by
// the Index before this phase runs.
func pathOf(idx *flatgraph.Index, e flatgraph.Endpoint) scope.Path {
	if e.IsBoundary() {
		return scope.Root
	}
	return idx.Op(e.Op()).Path
}
