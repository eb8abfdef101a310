package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

const maxQuantSettings = `
mapper:
  Sequence: Sequence
  Proteins: Proteins
  Charge: Charge
  Reverse: Reverse
  Raw file: Raw file
  Intensity: Intensity
replicate_mapper:
  LFQ_Orbitrap_AIF_Condition_B_Sample_Alpha_03: 2
  LFQ_Orbitrap_AIF_Condition_A_Sample_Alpha_01: 1
  LFQ_Orbitrap_AIF_Condition_A_Sample_Alpha_02: 1
decoy_flag: "+"
contaminant_flag: CON__
species_dict:
  YEAST: _YEAST
  HUMAN: _HUMAN
  ECOLI: _ECOLI
min_count_multispec: 1
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(maxQuantSettings))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sequence", "Proteins", "Charge", "Reverse", "Raw file", "Intensity"}, s.Mapper.Keys())
	assert.Equal(t, core.LayoutLong, s.Layout())
	assert.Equal(t, []string{
		"LFQ_Orbitrap_AIF_Condition_B_Sample_Alpha_03",
		"LFQ_Orbitrap_AIF_Condition_A_Sample_Alpha_01",
		"LFQ_Orbitrap_AIF_Condition_A_Sample_Alpha_02",
	}, s.RawFiles())
	rep, ok := s.ReplicateMapper.Get("LFQ_Orbitrap_AIF_Condition_A_Sample_Alpha_01")
	require.True(t, ok)
	assert.Equal(t, "1", rep)

	assert.True(t, s.DecoyFlag.Equal(core.String("+")))
	assert.Equal(t, "CON__", s.ContaminantFlag)
	assert.Equal(t, []string{"YEAST", "HUMAN", "ECOLI"}, s.SpeciesDict.Keys())
	assert.Equal(t, 1, s.MinCountMultiSpec)
	assert.Equal(t, 3, s.ExpectedRawFileCount())
}

func TestLoadTypedDecoyFlag(t *testing.T) {
	in := strings.Replace(maxQuantSettings, `decoy_flag: "+"`, "decoy_flag: true", 1)
	s, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	assert.True(t, s.DecoyFlag.Equal(core.Bool(true)))
	assert.False(t, s.DecoyFlag.Equal(core.String("True")))
}

func TestLoadRejectsDuplicateRawFile(t *testing.T) {
	in := strings.Replace(maxQuantSettings, "decoy_flag:", "  LFQ_Orbitrap_AIF_Condition_A_Sample_Alpha_01: 2\ndecoy_flag:", 1)
	_, err := Load(strings.NewReader(in))
	require.Error(t, err)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(strings.NewReader(maxQuantSettings + "min_count: 2\n"))
	require.Error(t, err)
}

func TestLoadRejectsNestedMapping(t *testing.T) {
	in := "mapper:\n  Sequence:\n    nested: value\n"
	_, err := Load(strings.NewReader(in))
	require.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maxquant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(maxQuantSettings), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Mapper.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
