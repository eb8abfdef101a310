// Package delimited provides streaming readers for tab- and comma-separated
// search engine result tables.
package delimited

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// Reader provides streaming access to the rows of a delimited table
type Reader struct {
	csv     *csv.Reader
	header  []string
	lineNum int
	record  []string
	row     []core.Value
	err     error
}

// NewReader creates a reader and consumes the header line.
func NewReader(r io.Reader, delimiter rune) (*Reader, error) {
	c := csv.NewReader(r)
	c.Comma = delimiter
	c.LazyQuotes = true
	c.FieldsPerRecord = -1
	c.ReuseRecord = true

	header, err := c.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input has no header line")
	}
	if err != nil {
		return nil, fmt.Errorf("line 1: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	// strip a UTF-8 byte order mark written by spreadsheet exports
	if len(cols) > 0 {
		cols[0] = strings.TrimPrefix(cols[0], "\ufeff")
	}

	return &Reader{csv: c, header: cols, lineNum: 1}, nil
}

// Header returns the column names.
func (r *Reader) Header() []string {
	return append([]string(nil), r.header...)
}

// Next advances to the next row. Returns false when no more rows or error.
func (r *Reader) Next() bool {
	r.row = nil
	r.record = nil

	record, err := r.csv.Read()
	if err != nil {
		if err != io.EOF {
			r.err = fmt.Errorf("line %d: %w", r.lineNum+1, err)
		}
		return false
	}
	r.lineNum++

	if len(record) > len(r.header) {
		r.err = fmt.Errorf("line %d: expected %d fields, got %d", r.lineNum, len(r.header), len(record))
		return false
	}

	// exporters sometimes drop trailing empty cells; those stay missing
	r.record = make([]string, len(r.header))
	copy(r.record, record)
	return true
}

// Record returns the raw text cells of the current row.
func (r *Reader) Record() []string {
	return r.record
}

// Row returns the current row with the type of each cell inferred on its own.
// ReadTable infers one type per column instead.
func (r *Reader) Row() []core.Value {
	if r.row == nil && r.record != nil {
		r.row = make([]core.Value, len(r.record))
		for i, raw := range r.record {
			r.row[i] = core.ParseValue(raw)
		}
	}
	return r.row
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// ReadTable reads a whole delimited table into memory. Each column gets one
// inferred type; textColumns are always kept as text.
func ReadTable(in io.Reader, delimiter rune, textColumns ...string) (*core.Table, error) {
	r, err := NewReader(in, delimiter)
	if err != nil {
		return nil, err
	}

	header := r.Header()
	t, err := core.NewTable(header...)
	if err != nil {
		return nil, fmt.Errorf("line 1: %w", err)
	}

	raw := make([][]string, len(header))
	for r.Next() {
		for j, cell := range r.Record() {
			raw[j] = append(raw[j], cell)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	text := make(map[string]bool, len(textColumns))
	for _, c := range textColumns {
		text[c] = true
	}

	cols := make([][]core.Value, len(header))
	for j, name := range header {
		if text[name] {
			cols[j] = core.TextColumn(raw[j])
		} else {
			cols[j] = core.ParseColumn(raw[j])
		}
	}

	n := 0
	if len(raw) > 0 {
		n = len(raw[0])
	}
	row := make([]core.Value, len(header))
	for i := 0; i < n; i++ {
		for j := range cols {
			row[j] = cols[j][i]
		}
		if err := t.AddRow(row...); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
	}

	return t, nil
}
