package compose

import (
	"github.com/Inesh-volunteer/graphbook/api"
)

// wire attaches every non-root composite to its parent (depth-1 scopes
// attach to the root) and connects the child's declared interface to
// the parent's by exact name match: a child input matching a parent
// input is fed from the parent's "this" boundary, a child output
// matching a parent output feeds the parent's "this" boundary.
//
// Name equality is the whole matching rule here. Two unrelated
// variables sharing a name across unrelated boundaries will be wired
// together; callers that need stronger matching must carry provenance
// on the links themselves.
func (b *builder) wire(d *Discovery) {
	for _, p := range d.Scopes.Paths() {
		if p.IsRoot() {
			continue
		}
		parent := b.node(p.Parent())
		child := b.node(p)
		parent.Operations = append(parent.Operations, child)

		for _, inp := range child.Inputs {
			if parent.HasInput(inp.Name) {
				b.addLink(parent, api.Link{
					Source: api.LinkEndpoint{Operation: api.ThisEndpoint, Data: inp.Name},
					Sink:   api.LinkEndpoint{Operation: child.Name, Data: inp.Name},
				})
			}
		}
		for _, out := range child.Outputs {
			if parent.HasOutput(out.Name) {
				b.addLink(parent, api.Link{
					Source: api.LinkEndpoint{Operation: child.Name, Data: out.Name},
					Sink:   api.LinkEndpoint{Operation: api.ThisEndpoint, Data: out.Name},
				})
			}
		}
	}
}
