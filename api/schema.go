// Package api defines the graphbook operation schema: the nested graph
// representation produced by the converter and consumed by downstream
// serializers. Types here are pure data; all construction logic lives
// in internal packages.
package api

// OperationType distinguishes leaf operations from scoped containers.
type OperationType string

const (
	CompositeOperation OperationType = "COMPOSITE_OPERATION"
	PrimitiveOperation OperationType = "PRIMITIVE_OPERATION"
)

// DataType classifies the payload carried by a variable.
type DataType string

const (
	Integer DataType = "INTEGER"
	Decimal DataType = "DECIMAL"
	Text    DataType = "TEXT"
	Boolean DataType = "BOOLEAN"
	Null    DataType = "NULL"
)

// ThisEndpoint is the sentinel operation identity meaning "the enclosing
// composite's own boundary" rather than one of its named children.
const ThisEndpoint = "this"

// Variable is one input or output slot of an operation.
type Variable struct {
	// Name of the variable as it appears in the source graph.
	Name string `json:"name"`
	// PrimitiveName is the positional role assigned by the primitive
	// catalog (e.g. "file_name", "list_item_2"). Empty if unassigned.
	PrimitiveName string `json:"primitive_name,omitempty"`
	// Type classification, when derivable from the source type tag.
	Type DataType `json:"type,omitempty"`
	// Shape of tensor-valued variables, when known.
	Shape []int `json:"shape,omitempty"`
	// Attribute marks variables synthesized from source attributes:
	// true when the attribute was filled on this operation.
	Attribute bool `json:"attribute,omitempty"`
}

// LinkEndpoint names one end of a link: an operation that is a direct
// child of the enclosing composite, or ThisEndpoint for the composite's
// own boundary. Data is the variable name at that end.
type LinkEndpoint struct {
	Operation string `json:"operation"`
	Data      string `json:"data"`
}

// Link is a single data dependency inside one composite. Both endpoints
// resolve to ThisEndpoint or a direct child of that composite; links
// never skip nesting levels.
type Link struct {
	Source  LinkEndpoint `json:"source"`
	Sink    LinkEndpoint `json:"sink"`
	VarName string       `json:"var_name,omitempty"`
}

// Operation is a node in the nested graph. Composites own their child
// operations and internal links; primitives carry only their interface.
type Operation struct {
	Name          string        `json:"name"`
	PrimitiveName string        `json:"primitive_name,omitempty"`
	Type          OperationType `json:"type"`
	Inputs        []Variable    `json:"inputs,omitempty"`
	Outputs       []Variable    `json:"outputs,omitempty"`
	Operations    []*Operation  `json:"operations,omitempty"`
	Links         []Link        `json:"links,omitempty"`
}

// InputNames returns the declared input variable names in order.
func (o *Operation) InputNames() []string {
	names := make([]string, len(o.Inputs))
	for i, v := range o.Inputs {
		names[i] = v.Name
	}
	return names
}

// OutputNames returns the declared output variable names in order.
func (o *Operation) OutputNames() []string {
	names := make([]string, len(o.Outputs))
	for i, v := range o.Outputs {
		names[i] = v.Name
	}
	return names
}

// HasInput reports whether name is among the declared inputs.
func (o *Operation) HasInput(name string) bool {
	for _, v := range o.Inputs {
		if v.Name == name {
			return true
		}
	}
	return false
}

// HasOutput reports whether name is among the declared outputs.
func (o *Operation) HasOutput(name string) bool {
	for _, v := range o.Outputs {
		if v.Name == name {
			return true
		}
	}
	return false
}
