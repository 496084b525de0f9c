// Package primitive converts flat operations into graphbook leaf
// operations: positional variable roles come from an op-type catalog,
// and source type tags are classified into graphbook data types.
package primitive

import (
	"fmt"
	"strings"

	"github.com/Inesh-volunteer/graphbook/api"
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
)

// ClassifyType maps a source element-type tag (e.g. "tensor(float)")
// to a graphbook data type. Unknown tags classify as Null.
func ClassifyType(tag string) api.DataType {
	switch {
	case strings.Contains(tag, "(int") || strings.Contains(tag, "(uint"):
		return api.Integer
	case strings.Contains(tag, "(float") || strings.Contains(tag, "(double") || strings.Contains(tag, "(bfloat"):
		return api.Decimal
	case strings.Contains(tag, "(string"):
		return api.Text
	case strings.Contains(tag, "(bool"):
		return api.Boolean
	default:
		return api.Null
	}
}

// File transfer ops are not part of the source op-type vocabulary; their
// slots are assigned positionally.
var fileOpSlots = map[string]struct{ inputs, outputs []string }{
	"read_from_file": {inputs: []string{"file_name", "dir_name", "extraction_schema"}},
	"write_to_file":  {outputs: []string{"file_name", "dir_name", "overwrite", "data"}},
}

// Convert builds the graphbook leaf for one flat operation, assigning
// primitive variable names from the catalog.
func (c *Catalog) Convert(op *flatgraph.Operation) *api.Operation {
	out := &api.Operation{
		Name:          op.Name,
		PrimitiveName: op.OpType,
		Type:          api.PrimitiveOperation,
	}

	spec, known := c.specs[op.OpType]
	fileSlots, isFileOp := fileOpSlots[op.OpType]

	for i, name := range op.Inputs {
		v := api.Variable{Name: name}
		switch {
		case isFileOp:
			if i < len(fileSlots.inputs) {
				v.PrimitiveName = fileSlots.inputs[i]
			}
		case known:
			v.PrimitiveName = spec.inputRole(i)
		}
		out.Inputs = append(out.Inputs, v)
	}

	if known {
		filled := make(map[string]bool, len(op.Attributes))
		for _, name := range op.Attributes {
			filled[name] = true
		}
		for _, attr := range spec.Attributes {
			out.Inputs = append(out.Inputs, api.Variable{
				Name:          attr.Name,
				PrimitiveName: "attribute_" + attr.Name,
				Type:          ClassifyType(attr.Type),
				Attribute:     filled[attr.Name],
			})
		}
	}

	for i, name := range op.Outputs {
		v := api.Variable{Name: name}
		if op.TypeTag != "" {
			v.Type = ClassifyType(op.TypeTag)
		}
		switch {
		case isFileOp:
			if i < len(fileSlots.outputs) {
				v.PrimitiveName = fileSlots.outputs[i]
			}
		case known:
			v.PrimitiveName = spec.outputRole(i)
		}
		out.Outputs = append(out.Outputs, v)
	}
	return out
}

// inputRole returns the role name for input position i. Positions past
// the declared slots of a list-style op continue the list numbering.
func (s *opSpec) inputRole(i int) string {
	if i < len(s.Inputs) {
		if s.Inputs[i].List {
			return fmt.Sprintf("list_item_%d", i)
		}
		return s.Inputs[i].Name
	}
	if len(s.Inputs) > 0 && s.Inputs[0].List {
		return fmt.Sprintf("list_item_%d", i)
	}
	return ""
}

func (s *opSpec) outputRole(i int) string {
	if i < len(s.Outputs) {
		return s.Outputs[i].Name
	}
	return ""
}
