package core

import "fmt"

// Canonical column names of the normalized quantification schema.
const (
	ColProteins    = "Proteins"
	ColSequence    = "Sequence"
	ColCharge      = "Charge"
	ColRawFile     = "Raw file"
	ColIntensity   = "Intensity"
	ColReverse     = "Reverse"
	ColContaminant = "contaminant"
	ColMultiSpec   = "MULTI_SPEC"
	ColReplicate   = "replicate"
	ColPeptidoform = "peptidoform"
)

// Table is an ordered collection of rows sharing one ordered column set.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			return nil, &DuplicateColumnError{Column: c}
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// AddRow appends a row. The number of values must match the number of columns.
func (t *Table) AddRow(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Get returns the value at row i in the named column, or missing if the column is absent.
func (t *Table) Get(i int, column string) Value {
	j, ok := t.index[column]
	if !ok {
		return Missing()
	}
	return t.rows[i][j]
}

// Set stores v at row i in the named column.
func (t *Table) Set(i int, column string, v Value) error {
	j, ok := t.index[column]
	if !ok {
		return &MissingColumnError{Column: column}
	}
	t.rows[i][j] = v
	return nil
}

// Column returns all values of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, nil
}

// AddColumn appends a column whose value for row i is fn(i).
func (t *Table) AddColumn(name string, fn func(i int) Value) error {
	if _, ok := t.index[name]; ok {
		return &DuplicateColumnError{Column: name}
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i, row := range t.rows {
		// rows may be shared with a filtered parent, so never grow in place
		t.rows[i] = append(row[:len(row):len(row)], fn(i))
	}
	return nil
}

// SetColumn overwrites the named column with fn(i), adding it if absent.
func (t *Table) SetColumn(name string, fn func(i int) Value) {
	j, ok := t.index[name]
	if !ok {
		// AddColumn cannot fail for an absent name
		_ = t.AddColumn(name, fn)
		return
	}
	for i := range t.rows {
		t.rows[i][j] = fn(i)
	}
}

// Rename renames columns by the given mapping. Every key must be a column; nothing
// is renamed when one is absent.
func (t *Table) Rename(m *Mapping) error {
	for _, k := range m.Keys() {
		if !t.HasColumn(k) {
			return &MissingColumnError{Column: k}
		}
	}
	renamed := make([]string, len(t.columns))
	for i, c := range t.columns {
		if to, ok := m.Get(c); ok {
			renamed[i] = to
		} else {
			renamed[i] = c
		}
	}
	index := make(map[string]int, len(renamed))
	for i, c := range renamed {
		if _, ok := index[c]; ok {
			return &DuplicateColumnError{Column: c}
		}
		index[c] = i
	}
	t.columns = renamed
	t.index = index
	return nil
}

// Filter returns a new table holding the rows for which keep returns true, in order.
// Row storage is shared with t; use Clone before calling Set on either table.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := t.emptyLike()
	for i, row := range t.rows {
		if keep(i) {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := t.emptyLike()
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = make([]Value, len(row))
		copy(out.rows[i], row)
	}
	return out
}

func (t *Table) emptyLike() *Table {
	out := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	return out
}
