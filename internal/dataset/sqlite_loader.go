package dataset

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LoadSQLite reads a dataset and its vocabulary from a SQLite database.
// Expected schema:
//
//	graphs(name TEXT)                                  -- one row
//	rows(level INTEGER, pos INTEGER, var_id INTEGER, level_id INTEGER)
//	vocab(id INTEGER, op_name TEXT, is_input INTEGER, var_name TEXT)
//
// rows are ordered by (level, pos); level_id holds PrimitiveLevel,
// DummyLevel, or a deeper level index.
func LoadSQLite(dbPath string) (*Hierarchical, Vocab, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	ds := &Hierarchical{}
	if err := db.QueryRow("SELECT name FROM graphs").Scan(&ds.Name); err != nil {
		return nil, nil, fmt.Errorf("query graph name: %w", err)
	}

	rows, err := db.Query("SELECT level, var_id, level_id FROM rows ORDER BY level, pos")
	if err != nil {
		return nil, nil, fmt.Errorf("query dataset rows: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var level, varID, levelID int
		if err := rows.Scan(&level, &varID, &levelID); err != nil {
			return nil, nil, fmt.Errorf("scan dataset row: %w", err)
		}
		for len(ds.Variables) <= level {
			ds.Variables = append(ds.Variables, nil)
			ds.GraphLevelIDs = append(ds.GraphLevelIDs, nil)
		}
		ds.Variables[level] = append(ds.Variables[level], varID)
		ds.GraphLevelIDs[level] = append(ds.GraphLevelIDs[level], levelID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate dataset rows: %w", err)
	}

	vocab, err := loadVocab(db)
	if err != nil {
		return nil, nil, err
	}
	return ds, vocab, nil
}

func loadVocab(db *sql.DB) (Vocab, error) {
	rows, err := db.Query("SELECT id, op_name, is_input, var_name FROM vocab")
	if err != nil {
		return nil, fmt.Errorf("query vocab: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	vocab := make(Vocab)
	for rows.Next() {
		var id int
		var entry VocabEntry
		if err := rows.Scan(&id, &entry.OpName, &entry.IsInput, &entry.VarName); err != nil {
			return nil, fmt.Errorf("scan vocab row: %w", err)
		}
		vocab[id] = entry
	}
	return vocab, rows.Err()
}
