// Package sqlite provides SQLite database writing for normalized quantification tables
package sqlite

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
	"github.com/ChrisMcGann/QuantNorm/pkg/normalize"
)

const (
	// Date format for RunTable (ISO 8601)
	runDateFormat = "2006-01-02T15:04:05Z07:00"
)

// Writer handles writing normalized results to SQLite database files.
// Each WriteResult call is stored as one run identified by a UUID.
type Writer struct {
	db         *sql.DB
	tx         *sql.Tx
	outputPath string
	runStmt    *sql.Stmt
	quantStmt  *sql.Stmt
	repStmt    *sql.Stmt
	closed     bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS RunTable (
		RunId TEXT PRIMARY KEY,
		CreationDate TEXT,
		Source TEXT,
		Layout TEXT,
		ExpectedRawFiles INTEGER,
		InputRows INTEGER,
		OutputRows INTEGER
	);

	CREATE TABLE IF NOT EXISTS QuantTable (
		QuantId INTEGER PRIMARY KEY AUTOINCREMENT,
		RunId TEXT REFERENCES RunTable(RunId),
		Sequence TEXT,
		Charge DOUBLE,
		Peptidoform TEXT,
		Proteins TEXT,
		RawFile TEXT,
		Replicate TEXT,
		Intensity DOUBLE,
		Contaminant BOOL,
		PrecursorMZ DOUBLE
	);

	CREATE TABLE IF NOT EXISTS ReplicateTable (
		RunId TEXT REFERENCES RunTable(RunId),
		Replicate TEXT,
		RawFile TEXT,
		Position INTEGER
	);

	CREATE INDEX IF NOT EXISTS QuantPeptidoform ON QuantTable (RunId, Peptidoform);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements starts the write transaction and prepares insert statements
func (w *Writer) prepareStatements() error {
	var err error

	w.tx, err = w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	w.runStmt, err = w.tx.Prepare(`
		INSERT INTO RunTable (
			RunId, CreationDate, Source, Layout, ExpectedRawFiles, InputRows, OutputRows
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare run statement: %w", err)
	}

	w.quantStmt, err = w.tx.Prepare(`
		INSERT INTO QuantTable (
			RunId, Sequence, Charge, Peptidoform, Proteins, RawFile,
			Replicate, Intensity, Contaminant, PrecursorMZ
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare quant statement: %w", err)
	}

	w.repStmt, err = w.tx.Prepare(`
		INSERT INTO ReplicateTable (RunId, Replicate, RawFile, Position) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare replicate statement: %w", err)
	}

	return nil
}

// WriteResult writes one normalized result and returns its run identifier
func (w *Writer) WriteResult(source string, res *normalize.Result) (string, error) {
	if w.closed {
		return "", fmt.Errorf("writer is closed")
	}

	runID := uuid.New().String()

	_, err := w.runStmt.Exec(
		runID,
		time.Now().UTC().Format(runDateFormat),
		source,
		res.Layout.String(),
		res.Stats.ExpectedRawFiles,
		res.Stats.InputRows,
		res.Stats.OutputRows,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, rep := range res.Replicates.Replicates() {
		for pos, raw := range res.Replicates.RawFiles(rep) {
			if _, err := w.repStmt.Exec(runID, rep, raw, pos); err != nil {
				return "", fmt.Errorf("failed to insert replicate %s: %w", rep, err)
			}
		}
	}

	t := res.Table
	for i := 0; i < t.Len(); i++ {
		seq := t.Get(i, core.ColSequence)
		charge := t.Get(i, core.ColCharge)

		_, err := w.quantStmt.Exec(
			runID,                                   // RunId
			nullable(seq),                           // Sequence
			nullable(charge),                        // Charge
			nullable(t.Get(i, core.ColPeptidoform)), // Peptidoform
			nullable(t.Get(i, core.ColProteins)),    // Proteins
			nullable(t.Get(i, core.ColRawFile)),     // RawFile
			nullable(t.Get(i, core.ColReplicate)),   // Replicate
			nullable(t.Get(i, core.ColIntensity)),   // Intensity
			nullable(t.Get(i, core.ColContaminant)), // Contaminant
			precursorMZ(seq, charge),                // PrecursorMZ
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	return runID, nil
}

// nullable converts a cell into a database/sql argument
func nullable(v core.Value) interface{} {
	switch v.Kind() {
	case core.KindNumber:
		f, _ := v.Float()
		return f
	case core.KindBool:
		b, _ := v.BoolValue()
		return b
	case core.KindString:
		return v.String()
	}
	return nil
}

// precursorMZ returns the precursor m/z, or nil when the charge is not a whole
// number or the sequence has unknown residues
func precursorMZ(seq, charge core.Value) interface{} {
	z, ok := charge.Float()
	if !ok || seq.IsMissing() || z != math.Trunc(z) {
		return nil
	}
	mz, err := core.PrecursorMZ(seq.String(), int(z))
	if err != nil {
		return nil
	}
	return mz
}

// Finalize commits the transaction and closes the database
func (w *Writer) Finalize() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.closeStatements()

	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		return fmt.Errorf("failed to commit: %w", err)
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close rolls back everything written since NewWriter unless Finalize already
// committed it, then closes the database
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.closeStatements()

	if err := w.tx.Rollback(); err != nil {
		w.db.Close()
		return fmt.Errorf("failed to roll back: %w", err)
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

func (w *Writer) closeStatements() {
	for _, stmt := range []*sql.Stmt{w.runStmt, w.quantStmt, w.repStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
}
