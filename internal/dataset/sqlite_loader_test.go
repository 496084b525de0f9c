package dataset

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func writeTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`
		CREATE TABLE graphs (name TEXT);
		CREATE TABLE rows (level INTEGER, pos INTEGER, var_id INTEGER, level_id INTEGER);
		CREATE TABLE vocab (id INTEGER, op_name TEXT, is_input INTEGER, var_name TEXT);

		INSERT INTO graphs VALUES ('Softmax');

		INSERT INTO rows VALUES (0, 0, 1, -1);
		INSERT INTO rows VALUES (0, 1, 2, -1);
		INSERT INTO rows VALUES (1, 0, 3, -1);
		INSERT INTO rows VALUES (1, 1, 4, -1);

		INSERT INTO vocab VALUES (1, 'exp', 1, 'x');
		INSERT INTO vocab VALUES (2, 'exp', 0, 'e');
		INSERT INTO vocab VALUES (3, 'reduce_sum', 1, 'e');
		INSERT INTO vocab VALUES (4, 'reduce_sum', 0, 's');
	`)
	require.NoError(t, err)
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeTestDB(t)

	ds, vocab, err := LoadSQLite(path)
	require.NoError(t, err)

	require.Equal(t, "Softmax", ds.Name)
	require.Equal(t, [][]int{{1, 2}, {3, 4}}, ds.Variables)
	require.Equal(t, [][]int{{-1, -1}, {-1, -1}}, ds.GraphLevelIDs)
	require.Equal(t, VocabEntry{OpName: "exp", IsInput: true, VarName: "x"}, vocab[1])
	require.Equal(t, VocabEntry{OpName: "reduce_sum", IsInput: false, VarName: "s"}, vocab[4])
}

func TestLoadSQLiteRoundTripsThroughDeconstruct(t *testing.T) {
	path := writeTestDB(t)

	ds, vocab, err := LoadSQLite(path)
	require.NoError(t, err)

	// Level 1 is never referenced from level 0 here, so only the top
	// run materializes.
	top, err := Deconstruct(ds, vocab)
	require.NoError(t, err)
	require.Len(t, top.Operations, 1)
	require.Equal(t, "exp", top.Operations[0].Name)
}
