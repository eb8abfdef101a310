// Package settings loads parse settings files describing a search engine's output.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// file mirrors the on-disk layout of a settings file.
type file struct {
	Mapper            orderedMapping `yaml:"mapper"`
	ReplicateMapper   orderedMapping `yaml:"replicate_mapper"`
	DecoyFlag         yaml.Node      `yaml:"decoy_flag"`
	ContaminantFlag   string         `yaml:"contaminant_flag"`
	SpeciesDict       orderedMapping `yaml:"species_dict"`
	MinCountMultiSpec int            `yaml:"min_count_multispec"`
	ExpectedRawFiles  int            `yaml:"expected_raw_files"`
	StrictReplicates  bool           `yaml:"strict_replicates"`
}

// orderedMapping decodes a YAML mapping of scalars while keeping declaration order.
type orderedMapping struct {
	m *core.Mapping
}

func (o *orderedMapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	o.m = core.NewMapping()
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping entries must be scalars", k.Line)
		}
		o.m.Set(k.Value, v.Value)
	}
	return nil
}

// Load reads parse settings from r and validates them.
func Load(r io.Reader) (*core.Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("settings file is empty")
		}
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	decoy, err := scalarValue(&f.DecoyFlag)
	if err != nil {
		return nil, fmt.Errorf("decoy_flag: %w", err)
	}

	s := &core.Settings{
		Mapper:            f.Mapper.m,
		ReplicateMapper:   f.ReplicateMapper.m,
		DecoyFlag:         decoy,
		ContaminantFlag:   f.ContaminantFlag,
		SpeciesDict:       f.SpeciesDict.m,
		MinCountMultiSpec: f.MinCountMultiSpec,
		ExpectedRawFiles:  f.ExpectedRawFiles,
		StrictReplicates:  f.StrictReplicates,
	}
	if s.SpeciesDict == nil {
		s.SpeciesDict = core.NewMapping()
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads parse settings from the file at path.
func LoadFile(path string) (*core.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// scalarValue keeps the YAML type of a scalar so that "+" and 1 compare differently.
func scalarValue(n *yaml.Node) (core.Value, error) {
	if n.Kind == 0 {
		return core.Missing(), nil
	}
	if n.Kind != yaml.ScalarNode {
		return core.Missing(), fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	var x any
	if err := n.Decode(&x); err != nil {
		return core.Missing(), err
	}
	return core.ValueOf(x), nil
}
