package compose

import (
	"github.com/Inesh-volunteer/graphbook/api"
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// route emits the concrete link for every grouped flat link, at the
// nesting level of the scope that owns it. Scopes are processed in
// discovery order so output is deterministic.
func (b *builder) route(d *Discovery, groups *linkGroups) error {
	for _, p := range d.Scopes.Paths() {
		for _, link := range groups.byScope[p.String()] {
			if err := b.routeLink(p, link); err != nil {
				return err
			}
		}
	}
	return nil
}

// routeLink resolves one flat link inside the composite at nodePath.
// The producer falls into exactly one of:
//
//   - the graph boundary: skipped, boundary traffic is handled by the
//     interface wiring;
//   - a primitive owned by this scope: linked directly to the consumer;
//   - an operation outside this scope's subtree: the variable must be a
//     declared input here, and the link runs from "this";
//   - an operation strictly deeper inside the subtree: the variable
//     must be a declared output of the immediate child scope on the
//     producer's path, and the link runs from that child.
//
// The validation steps cross-check the propagation phase; a miss means
// the flat input's ownership annotations and links disagree.
func (b *builder) routeLink(nodePath scope.Path, link flatgraph.Link) error {
	if link.Source.IsBoundary() {
		return nil
	}
	node := b.node(nodePath)
	srcOp := b.idx.Op(link.Source.Op())

	sink := api.LinkEndpoint{Operation: api.ThisEndpoint, Data: link.VarName}
	if !link.Sink.IsBoundary() {
		sink.Operation = link.Sink.Op()
	}

	if srcOp.Path.Equal(nodePath) {
		b.addLink(node, api.Link{
			Source:  api.LinkEndpoint{Operation: srcOp.Name, Data: link.VarName},
			Sink:    sink,
			VarName: link.VarName,
		})
		return nil
	}

	if !nodePath.IsRoot() && !srcOp.Path.HasPrefix(nodePath) {
		if !b.iface.HasInput(nodePath, link.VarName) {
			return &MismatchError{
				VarName:  link.VarName,
				Scope:    nodePath.String(),
				Want:     "input",
				Producer: srcOp.Path.String(),
				Consumer: nodePath.String(),
				Step:     "outside-subtree descent",
			}
		}
		b.addLink(node, api.Link{
			Source: api.LinkEndpoint{Operation: api.ThisEndpoint, Data: link.VarName},
			Sink:   sink,
		})
		return nil
	}

	// Producer is strictly deeper inside this subtree: hand the link to
	// the immediate child scope on the producer's path.
	step := "child-scope ascent"
	if nodePath.IsRoot() {
		step = "graph-root ascent"
	}
	child := srcOp.Path.Prefix(nodePath.Depth() + 1)
	if !b.iface.HasOutput(child, link.VarName) {
		return &MismatchError{
			VarName:  link.VarName,
			Scope:    child.String(),
			Want:     "output",
			Producer: srcOp.Path.String(),
			Consumer: nodePath.String(),
			Step:     step,
		}
	}
	b.addLink(node, api.Link{
		Source: api.LinkEndpoint{Operation: child.String(), Data: link.VarName},
		Sink:   sink,
	})
	return nil
}
