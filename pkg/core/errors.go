package core

import "fmt"

// ValidationError represents an invalid parse settings field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// MissingColumnError reports a column that the settings require but the table lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in input table, check the input file and selected search engine", e.Column)
}

// MissingFieldError reports a required canonical field that is absent, either as a
// column (Row < 0) or as a value in a specific row.
type MissingFieldError struct {
	Field string
	Row   int
}

func (e *MissingFieldError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("required field %q is not mapped to any input column", e.Field)
	}
	return fmt.Sprintf("required field %q is missing in row %d", e.Field, e.Row)
}

// UnmappedRawFileError reports a raw file with no replicate assignment in strict mode.
type UnmappedRawFileError struct {
	RawFile string
}

func (e *UnmappedRawFileError) Error() string {
	return fmt.Sprintf("raw file %q has no replicate in replicate_mapper", e.RawFile)
}

// DuplicateColumnError reports a column name that would appear twice.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Column)
}

// ValueError reports a cell whose value has the wrong type.
type ValueError struct {
	Column string
	Row    int
	Value  Value
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q in column %q, row %d", e.Value.String(), e.Column, e.Row)
}
