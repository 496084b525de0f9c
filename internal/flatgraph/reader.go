package flatgraph

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// The flat exchange format uses the graph's own name as the boundary
// sentinel on link endpoints; the reader maps it to the tagged variant.

var (
	opsPath   = jp.MustParseString("$.operations[*]")
	linksPath = jp.MustParseString("$.links[*]")
)

// Decode parses a flat graph from its JSON exchange encoding.
func Decode(data []byte) (*Graph, error) {
	root, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse flat graph json: %w", err)
	}
	doc, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("flat graph json: expected object at top level, got %T", root)
	}

	g := &Graph{
		Name:    str(doc, "name"),
		Inputs:  strs(doc, "inputs"),
		Outputs: strs(doc, "outputs"),
	}
	if g.Name == "" {
		return nil, fmt.Errorf("flat graph json: missing graph name")
	}

	for _, raw := range opsPath.Get(root) {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("flat graph json: operation entry is %T, want object", raw)
		}
		op := &Operation{
			Name:       str(m, "name"),
			OpType:     str(m, "op_type"),
			Inputs:     strs(m, "inputs"),
			Outputs:    strs(m, "outputs"),
			TypeTag:    str(m, "type"),
			Attributes: strs(m, "attributes"),
		}
		if op.Name == "" {
			return nil, fmt.Errorf("flat graph json: operation without a name")
		}
		op.Path, err = scope.Parse(str(m, "composite_path"))
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", op.Name, err)
		}
		g.Operations = append(g.Operations, op)
	}

	for _, raw := range linksPath.Get(root) {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("flat graph json: link entry is %T, want object", raw)
		}
		link := Link{
			VarName: str(m, "var_name"),
			Source:  g.endpoint(str(m, "source")),
			Sink:    g.endpoint(str(m, "sink")),
		}
		if link.VarName == "" {
			return nil, fmt.Errorf("flat graph json: link without a var_name")
		}
		g.Links = append(g.Links, link)
	}
	return g, nil
}

func (g *Graph) endpoint(ref string) Endpoint {
	if ref == g.Name {
		return Boundary()
	}
	return OpRef(ref)
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func strs(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
