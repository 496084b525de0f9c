package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Inesh-volunteer/graphbook/api"
)

func softmaxVocab() Vocab {
	return Vocab{
		1: {OpName: "exp", IsInput: true, VarName: "x"},
		2: {OpName: "exp", IsInput: false, VarName: "e"},
		3: {OpName: "reduce_sum", IsInput: true, VarName: "e"},
		4: {OpName: "reduce_sum", IsInput: false, VarName: "s"},
		5: {OpName: "divide", IsInput: true, VarName: "e"},
		6: {OpName: "divide", IsInput: false, VarName: "y"},
		7: {OpName: "block", IsInput: true, VarName: "x"},
		8: {OpName: "DataType.DECIMAL", IsInput: true, VarName: "x"},
	}
}

func TestDeconstructContiguousRuns(t *testing.T) {
	ds := &Hierarchical{
		Name:          "Softmax",
		Variables:     [][]int{{1, 2, 3, 4, 5, 6}},
		GraphLevelIDs: [][]int{{PrimitiveLevel, PrimitiveLevel, PrimitiveLevel, PrimitiveLevel, PrimitiveLevel, PrimitiveLevel}},
	}

	top, err := Deconstruct(ds, softmaxVocab())
	require.NoError(t, err)

	require.Equal(t, "Softmax", top.Name)
	require.Equal(t, api.CompositeOperation, top.Type)
	require.Len(t, top.Operations, 3, "each contiguous run is one primitive")

	exp := top.Operations[0]
	require.Equal(t, "exp", exp.Name)
	require.Equal(t, api.PrimitiveOperation, exp.Type)
	require.Equal(t, []string{"x"}, exp.InputNames())
	require.Equal(t, []string{"e"}, exp.OutputNames())

	require.Equal(t, "reduce_sum", top.Operations[1].Name)
	require.Equal(t, "divide", top.Operations[2].Name)
}

func TestDeconstructOutputToInputStartsNewOp(t *testing.T) {
	// A second run of the same op name after its outputs is a new
	// operation, disambiguated by row position.
	ds := &Hierarchical{
		Name:          "Twice",
		Variables:     [][]int{{1, 2, 1, 2}},
		GraphLevelIDs: [][]int{{PrimitiveLevel, PrimitiveLevel, PrimitiveLevel, PrimitiveLevel}},
	}

	top, err := Deconstruct(ds, softmaxVocab())
	require.NoError(t, err)
	require.Len(t, top.Operations, 2)
	require.Equal(t, "exp", top.Operations[0].Name)
	require.Equal(t, "exp_2", top.Operations[1].Name)
}

func TestDeconstructLevelReference(t *testing.T) {
	ds := &Hierarchical{
		Name: "Nested",
		Variables: [][]int{
			{1, 2, 7, 7},
			{3, 4},
		},
		GraphLevelIDs: [][]int{
			{PrimitiveLevel, PrimitiveLevel, 1, 1},
			{PrimitiveLevel, PrimitiveLevel},
		},
	}

	top, err := Deconstruct(ds, softmaxVocab())
	require.NoError(t, err)
	require.Len(t, top.Operations, 2)

	sub := top.Operations[1]
	require.Equal(t, api.CompositeOperation, sub.Type)
	require.Equal(t, "exp", sub.Name, "nested level is named after the preceding operation")
	require.Len(t, sub.Operations, 1)
	require.Equal(t, "reduce_sum", sub.Operations[0].Name)
	// Both references attach interface variables to the same composite.
	require.Equal(t, []string{"x", "x"}, sub.InputNames())
}

func TestDeconstructSkipsDummyAndBootstrapRows(t *testing.T) {
	ds := &Hierarchical{
		Name:          "Padded",
		Variables:     [][]int{{8, 1, 1, 2}},
		GraphLevelIDs: [][]int{{PrimitiveLevel, DummyLevel, PrimitiveLevel, PrimitiveLevel}},
	}

	top, err := Deconstruct(ds, softmaxVocab())
	require.NoError(t, err)
	require.Len(t, top.Operations, 1)
	require.Equal(t, []string{"x"}, top.Operations[0].InputNames())
}

func TestDeconstructRejectsUnknownLevelMarker(t *testing.T) {
	// A negative level id that is neither the primitive nor the dummy
	// marker must fail like any other out-of-range level reference.
	ds := &Hierarchical{
		Name:          "Bad",
		Variables:     [][]int{{1, 7}},
		GraphLevelIDs: [][]int{{PrimitiveLevel, -3}},
	}
	_, err := Deconstruct(ds, softmaxVocab())
	require.Error(t, err)
	require.Contains(t, err.Error(), "level -3 out of range")
}

func TestDeconstructUnknownTokenFails(t *testing.T) {
	ds := &Hierarchical{
		Name:          "Bad",
		Variables:     [][]int{{99}},
		GraphLevelIDs: [][]int{{PrimitiveLevel}},
	}
	_, err := Deconstruct(ds, softmaxVocab())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not in vocab")
}

func TestParseVocab(t *testing.T) {
	vocab, err := ParseVocab([]byte(`[
		[1, ["exp", true, "x"]],
		[2, ["exp", false, "e"]]
	]`))
	require.NoError(t, err)
	require.Equal(t, VocabEntry{OpName: "exp", IsInput: true, VarName: "x"}, vocab[1])
	require.Equal(t, VocabEntry{OpName: "exp", IsInput: false, VarName: "e"}, vocab[2])
}

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset([]byte(`{
		"name": "Softmax",
		"variables": [[1, 2]],
		"graph_level_ids": [[-1, -1]]
	}`))
	require.NoError(t, err)
	require.Equal(t, "Softmax", ds.Name)
	require.Equal(t, [][]int{{1, 2}}, ds.Variables)
}
