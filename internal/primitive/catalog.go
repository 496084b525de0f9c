package primitive

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// Catalog maps source op-type tags to their slot and attribute specs.
// The zero value knows nothing; every unknown op type still converts,
// just without positional role names.
type Catalog struct {
	specs map[string]*opSpec
}

type varSpec struct {
	Name string
	// List marks a variadic slot (e.g. concat inputs); positions are
	// numbered list_item_N instead of named.
	List bool
}

type attrSpec struct {
	Name string
	Type string
}

type opSpec struct {
	Inputs     []varSpec
	Outputs    []varSpec
	Attributes []attrSpec
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{specs: make(map[string]*opSpec)}
}

// Known reports whether the catalog has a spec for the op type.
func (c *Catalog) Known(opType string) bool {
	_, ok := c.specs[opType]
	return ok
}

// LoadCatalog parses a catalog from its JSON encoding:
//
//	{"MatMul": {"inputs": [{"name": "A"}, {"name": "B"}],
//	            "outputs": [{"name": "Y"}],
//	            "attributes": [{"name": "axis", "type": "tensor(int64)"}]}}
func LoadCatalog(data []byte) (*Catalog, error) {
	root, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	doc, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("catalog json: expected object at top level, got %T", root)
	}

	c := NewCatalog()
	for opType, raw := range doc {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("catalog json: op type %q is %T, want object", opType, raw)
		}
		spec := &opSpec{}
		for _, entry := range anySlice(m["inputs"]) {
			spec.Inputs = append(spec.Inputs, varSpec{
				Name: fieldStr(entry, "name"),
				List: fieldBool(entry, "list"),
			})
		}
		for _, entry := range anySlice(m["outputs"]) {
			spec.Outputs = append(spec.Outputs, varSpec{Name: fieldStr(entry, "name")})
		}
		for _, entry := range anySlice(m["attributes"]) {
			spec.Attributes = append(spec.Attributes, attrSpec{
				Name: fieldStr(entry, "name"),
				Type: fieldStr(entry, "type"),
			})
		}
		c.specs[opType] = spec
	}
	return c, nil
}

func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func fieldStr(entry any, key string) string {
	if m, ok := entry.(map[string]any); ok {
		if s, ok := m[key].(string); ok {
			return s
		}
	}
	return ""
}

func fieldBool(entry any, key string) bool {
	if m, ok := entry.(map[string]any); ok {
		if b, ok := m[key].(bool); ok {
			return b
		}
	}
	return false
}
