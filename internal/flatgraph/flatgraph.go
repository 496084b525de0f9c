// Package flatgraph models the flat source format: an operation list
// with optional scope-path annotations, plus producer→consumer links
// keyed by variable name. It is the input side of the converter; the
// nested output lives in the api package.
package flatgraph

import (
	"fmt"

	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

// Endpoint is one end of a flat link: either a named operation or the
// graph boundary. The boundary is a tagged variant, not a magic name,
// so producer/consumer classification stays exhaustive.
type Endpoint struct {
	op       string
	boundary bool
}

// Boundary is the graph-boundary endpoint: a variable that originates
// outside the whole graph or terminates as a top-level result.
func Boundary() Endpoint {
	return Endpoint{boundary: true}
}

// OpRef is an endpoint naming a flat operation.
func OpRef(name string) Endpoint {
	return Endpoint{op: name}
}

// IsBoundary reports whether e is the graph boundary.
func (e Endpoint) IsBoundary() bool {
	return e.boundary
}

// Op returns the operation name; "" for the boundary.
func (e Endpoint) Op() string {
	return e.op
}

func (e Endpoint) String() string {
	if e.boundary {
		return "<graph boundary>"
	}
	return e.op
}

// Operation is one flat operation record. Read once from the external
// source and immutable thereafter.
type Operation struct {
	// Name is the operation identity, unique within the graph.
	Name string
	// OpType is the opaque primitive type tag (e.g. "MatMul").
	OpType string
	// Path is the owning scope; root for unannotated operations.
	Path scope.Path
	// Inputs and Outputs are ordered variable names.
	Inputs  []string
	Outputs []string
	// TypeTag is the source element-type string, when present, used
	// for data-type classification.
	TypeTag string
	// Attributes carries filled attribute names from the source.
	Attributes []string
}

// Link is one flat data dependency.
type Link struct {
	VarName string
	Source  Endpoint
	Sink    Endpoint
}

// Graph is the parsed flat graph.
type Graph struct {
	Name       string
	Inputs     []string
	Outputs    []string
	Operations []*Operation
	Links      []Link
}

// HasOutput reports whether name is a declared external output.
func (g *Graph) HasOutput(name string) bool {
	for _, out := range g.Outputs {
		if out == name {
			return true
		}
	}
	return false
}

// UnresolvedEndpointError reports a link referencing an operation
// identity absent from the operation list. Always fatal: dropping the
// link would corrupt the data-flow semantics of the result.
type UnresolvedEndpointError struct {
	VarName string
	Ref     string
	Role    string // "source" or "sink"
}

func (e *UnresolvedEndpointError) Error() string {
	return fmt.Sprintf("link %s %q not recognized (variable %q)", e.Role, e.Ref, e.VarName)
}
