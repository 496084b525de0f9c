package dataset

import (
	"encoding/json"
	"fmt"
)

// ParseDataset decodes a row-encoded dataset from JSON.
func ParseDataset(data []byte) (*Hierarchical, error) {
	var ds Hierarchical
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset json: %w", err)
	}
	if ds.Name == "" {
		return nil, fmt.Errorf("dataset json: missing name")
	}
	return &ds, nil
}

// ParseVocab decodes the vocabulary from its JSON encoding, a list of
// [id, [op_name, is_input, var_name]] pairs.
func ParseVocab(data []byte) (Vocab, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse vocab json: %w", err)
	}

	vocab := make(Vocab, len(raw))
	for i, pair := range raw {
		var id int
		var entry [3]json.RawMessage
		parts := []any{&id, &entry}
		if err := json.Unmarshal(pair, &parts); err != nil {
			return nil, fmt.Errorf("vocab entry %d: %w", i, err)
		}
		var e VocabEntry
		if err := json.Unmarshal(entry[0], &e.OpName); err != nil {
			return nil, fmt.Errorf("vocab entry %d: op name: %w", i, err)
		}
		if err := json.Unmarshal(entry[1], &e.IsInput); err != nil {
			return nil, fmt.Errorf("vocab entry %d: input flag: %w", i, err)
		}
		if err := json.Unmarshal(entry[2], &e.VarName); err != nil {
			return nil, fmt.Errorf("vocab entry %d: var name: %w", i, err)
		}
		vocab[id] = e
	}
	return vocab, nil
}
