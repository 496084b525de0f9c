// Package dataset rebuilds a nested graph from its row-encoded,
// vocabulary-tokenized form. Unlike the scope-path converter, grouping
// here is positional: a contiguous run of rows naming the same
// operation extends that operation, and a level marker recurses into a
// deeper graph level.
package dataset

import (
	"fmt"

	"github.com/Inesh-volunteer/graphbook/api"
)

// Level markers in the graph-level rows. Any other value is the index
// of a deeper level in the dataset.
const (
	// PrimitiveLevel marks a row belonging to a primitive operation.
	PrimitiveLevel = -1
	// DummyLevel marks sub-graph padding; the row maps to the
	// enclosing boundary and contributes nothing.
	DummyLevel = -2
)

// Hierarchical is the row-encoded dataset: one variable row and one
// graph-level row per level, level 0 being the top graph.
type Hierarchical struct {
	Name          string  `json:"name"`
	Variables     [][]int `json:"variables"`
	GraphLevelIDs [][]int `json:"graph_level_ids"`
}

// VocabEntry decodes one token id.
type VocabEntry struct {
	OpName  string
	IsInput bool
	VarName string
}

// Vocab maps token ids to their entries.
type Vocab map[int]VocabEntry

// Deconstruct rebuilds the nested operation tree from the dataset.
func Deconstruct(ds *Hierarchical, vocab Vocab) (*api.Operation, error) {
	if len(ds.Variables) == 0 || len(ds.GraphLevelIDs) == 0 {
		return nil, fmt.Errorf("dataset %q has no levels", ds.Name)
	}
	return deconstructLevel(ds.Name, ds, 0, vocab, make(map[int]*api.Operation))
}

// deconstructLevel rebuilds one graph level. levelToOp memoizes levels
// already expanded so repeated references extend the same composite.
func deconstructLevel(name string, ds *Hierarchical, level int, vocab Vocab, levelToOp map[int]*api.Operation) (*api.Operation, error) {
	if level < 0 || level >= len(ds.Variables) || level >= len(ds.GraphLevelIDs) {
		return nil, fmt.Errorf("dataset %q: level %d out of range", ds.Name, level)
	}
	varRow := ds.Variables[level]
	levelRow := ds.GraphLevelIDs[level]
	if len(varRow) != len(levelRow) {
		return nil, fmt.Errorf("dataset %q level %d: variable row length %d != level row length %d",
			ds.Name, level, len(varRow), len(levelRow))
	}

	top := &api.Operation{
		Name:          name,
		PrimitiveName: name,
		Type:          api.CompositeOperation,
	}

	var ops []*api.Operation
	var lastOp *api.Operation
	lastOpName := ""
	lastWasInput := true
	names := make(map[string]bool)

	for i := range varRow {
		levelItem := levelRow[i]
		if levelItem == DummyLevel {
			continue
		}

		entry, ok := vocab[varRow[i]]
		if !ok {
			return nil, fmt.Errorf("dataset %q level %d: token %d not in vocab", ds.Name, level, varRow[i])
		}
		if isBootstrap(entry.OpName) {
			// Bootstrapped data rows carry tensor details, not ops.
			continue
		}

		variable := api.Variable{Name: entry.VarName, PrimitiveName: entry.VarName}

		if levelItem == PrimitiveLevel {
			var op *api.Operation
			// A run of rows with the same op name extends the current
			// primitive as long as the phase only moves input→output.
			if lastOpName == entry.OpName && lastOp != nil && (entry.IsInput == lastWasInput || lastWasInput) {
				op = lastOp
			} else {
				opName := entry.OpName
				if names[opName] {
					opName = fmt.Sprintf("%s_%d", entry.OpName, i)
				}
				op = &api.Operation{
					Name:          opName,
					PrimitiveName: entry.OpName,
					Type:          api.PrimitiveOperation,
				}
				ops = append(ops, op)
			}
			names[op.Name] = true
			lastOpName = entry.OpName

			if entry.IsInput {
				op.Inputs = append(op.Inputs, variable)
			} else {
				op.Outputs = append(op.Outputs, variable)
			}
			lastWasInput = entry.IsInput
			lastOp = op
			continue
		}

		// A deeper level reference: expand it once, then keep adding
		// interface variables to the same composite.
		op, seen := levelToOp[levelItem]
		if !seen {
			if lastOp == nil {
				return nil, fmt.Errorf("dataset %q level %d: level reference %d before any operation",
					ds.Name, level, levelItem)
			}
			sub, err := deconstructLevel(lastOp.Name, ds, levelItem, vocab, levelToOp)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sub)
			levelToOp[levelItem] = sub
			op = sub
		}

		if entry.IsInput {
			op.Inputs = append(op.Inputs, variable)
		} else {
			op.Outputs = append(op.Outputs, variable)
		}
		lastWasInput = true
		lastOpName = op.Name
		lastOp = op
	}

	top.Operations = ops
	return top, nil
}

func isBootstrap(opName string) bool {
	return len(opName) >= 8 && opName[:8] == "DataType"
}
