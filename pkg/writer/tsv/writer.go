// Package tsv writes normalized tables as tab-separated text.
package tsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// Write writes every column of t to w, header first. Missing cells are empty.
func Write(w io.Writer, t *core.Table) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	cw.Comma = '\t'

	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			record[j] = t.Get(i, c).String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes t to the file at path, replacing it.
func WriteFile(path string, t *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
