package tsv

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

func TestWrite(t *testing.T) {
	tbl, err := core.NewTable("Sequence", "Charge", "replicate", "contaminant")
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow(core.String("PEPTIDE"), core.Number(2), core.Missing(), core.Bool(false)))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))
	assert.Equal(t, "Sequence\tCharge\treplicate\tcontaminant\nPEPTIDE\t2\t\tFalse\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	tbl, err := core.NewTable("Sequence")
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow(core.String("ELVISK")))

	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, WriteFile(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sequence\nELVISK\n", string(data))
}
