package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
	"github.com/ChrisMcGann/QuantNorm/pkg/normalize"
)

func testResult(t *testing.T) *normalize.Result {
	t.Helper()
	tbl, err := core.NewTable("Proteins", "Sequence", "Charge", "Raw file", "Intensity")
	require.NoError(t, err)
	for _, raw := range []string{"A1", "A2", "B1"} {
		require.NoError(t, tbl.AddRow(
			core.String("P00761_HUMAN"), core.String("PEPTIDE"), core.Number(2), core.String(raw), core.Number(100),
		))
	}

	s := &core.Settings{
		Mapper: core.NewMapping(
			core.Pair{Key: "Proteins", Value: core.ColProteins},
			core.Pair{Key: "Sequence", Value: core.ColSequence},
			core.Pair{Key: "Charge", Value: core.ColCharge},
			core.Pair{Key: "Raw file", Value: core.ColRawFile},
			core.Pair{Key: "Intensity", Value: core.ColIntensity},
		),
		ReplicateMapper: core.NewMapping(
			core.Pair{Key: "A1", Value: "A"},
			core.Pair{Key: "A2", Value: "A"},
			core.Pair{Key: "B1", Value: "B"},
		),
		ContaminantFlag:   "CON__",
		SpeciesDict:       core.NewMapping(core.Pair{Key: "HUMAN", Value: "_HUMAN"}),
		MinCountMultiSpec: 1,
	}

	res, err := normalize.Convert(tbl, s)
	require.NoError(t, err)
	require.Equal(t, 3, res.Table.Len())
	return res
}

func TestWriteResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quant.db")

	w, err := NewWriter(path)
	require.NoError(t, err)
	runID, err := w.WriteResult("evidence.txt", testResult(t))
	require.NoError(t, err)
	require.NotEmpty(t, runID)
	require.NoError(t, w.Finalize())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM QuantTable WHERE RunId = ?`, runID).Scan(&rows))
	assert.Equal(t, 3, rows)

	var peptidoform string
	var mz float64
	require.NoError(t, db.QueryRow(`SELECT Peptidoform, PrecursorMZ FROM QuantTable LIMIT 1`).Scan(&peptidoform, &mz))
	assert.Equal(t, "PEPTIDE|Z=2", peptidoform)
	assert.InDelta(t, 400.687, mz, 0.01)

	var layout string
	var expected int
	require.NoError(t, db.QueryRow(`SELECT Layout, ExpectedRawFiles FROM RunTable WHERE RunId = ?`, runID).Scan(&layout, &expected))
	assert.Equal(t, "long", layout)
	assert.Equal(t, 3, expected)

	var files []string
	r, err := db.Query(`SELECT RawFile FROM ReplicateTable WHERE Replicate = 'A' ORDER BY Position`)
	require.NoError(t, err)
	defer r.Close()
	for r.Next() {
		var f string
		require.NoError(t, r.Scan(&f))
		files = append(files, f)
	}
	require.NoError(t, r.Err())
	assert.Equal(t, []string{"A1", "A2"}, files)
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := NewWriter(filepath.Join(t.TempDir(), "quant.db"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.WriteResult("x", testResult(t))
	require.Error(t, err)
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestCloseDiscardsUnfinalizedRun(t *testing.T) {
	tests := []struct {
		name      string
		breakRows bool
	}{
		{"successful write", false},
		{"failed write", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "quant.db")
			res := testResult(t)

			w, err := NewWriter(path)
			require.NoError(t, err)
			if tt.breakRows {
				require.NoError(t, w.quantStmt.Close())
				_, err = w.WriteResult("evidence.txt", res)
				require.Error(t, err)
			} else {
				_, err = w.WriteResult("evidence.txt", res)
				require.NoError(t, err)
			}
			require.NoError(t, w.Close())

			for _, table := range []string{"RunTable", "ReplicateTable", "QuantTable"} {
				assert.Equal(t, 0, countRows(t, path, table), table)
			}
		})
	}
}

func TestCloseAfterFinalizeKeepsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quant.db")
	w, err := NewWriter(path)
	require.NoError(t, err)
	_, err = w.WriteResult("evidence.txt", testResult(t))
	require.NoError(t, err)
	require.NoError(t, w.Finalize())
	require.NoError(t, w.Close())

	assert.Equal(t, 1, countRows(t, path, "RunTable"))
	assert.Equal(t, 3, countRows(t, path, "QuantTable"))
}

func TestPrecursorMZ(t *testing.T) {
	tests := []struct {
		name   string
		seq    core.Value
		charge core.Value
		want   float64
		isNull bool
	}{
		{"integer charge", core.String("PEPTIDE"), core.Number(2), 400.687, false},
		{"fractional charge", core.String("PEPTIDE"), core.Number(2.5), 0, true},
		{"text charge", core.String("PEPTIDE"), core.String("2"), 0, true},
		{"missing sequence", core.Missing(), core.Number(2), 0, true},
		{"unknown residue", core.String("PEPTIDEB"), core.Number(2), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := precursorMZ(tt.seq, tt.charge)
			if tt.isNull {
				assert.Nil(t, got)
				return
			}
			require.IsType(t, float64(0), got)
			assert.InDelta(t, tt.want, got.(float64), 0.01)
		})
	}
}
