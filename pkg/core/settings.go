package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Settings describes how one search engine's output maps onto the canonical schema.
type Settings struct {
	// Required fields
	Mapper          *Mapping // source column -> canonical column
	ReplicateMapper *Mapping // raw file -> replicate

	// Biological annotation
	DecoyFlag         Value    // value of the Reverse column marking decoy hits
	ContaminantFlag   string   // pattern identifying contaminant proteins
	SpeciesDict       *Mapping // species label -> pattern in the Proteins field
	MinCountMultiSpec int      // rows matching more species than this are ambiguous

	// Completeness filter
	ExpectedRawFiles int // 0 = number of distinct raw files in ReplicateMapper

	// StrictReplicates turns raw files missing from ReplicateMapper into errors
	// instead of rows with a missing replicate.
	StrictReplicates bool
}

var reservedColumns = map[string]bool{
	ColProteins: true, ColSequence: true, ColCharge: true, ColRawFile: true,
	ColIntensity: true, ColReverse: true, ColContaminant: true, ColMultiSpec: true,
	ColReplicate: true, ColPeptidoform: true,
}

// Validate checks that the settings can drive a conversion.
func (s *Settings) Validate() error {
	var errs []string

	if s.Mapper.Len() == 0 {
		errs = append(errs, "mapper must not be empty")
	}
	if s.ReplicateMapper.Len() == 0 {
		errs = append(errs, "replicate_mapper must not be empty")
	}
	for _, raw := range s.ReplicateMapper.Duplicates() {
		errs = append(errs, fmt.Sprintf("raw file %q is assigned more than once in replicate_mapper", raw))
	}
	for _, col := range s.Mapper.Duplicates() {
		errs = append(errs, fmt.Sprintf("column %q is mapped more than once", col))
	}
	if s.MinCountMultiSpec < 0 {
		errs = append(errs, "min_count_multispec must be non-negative")
	}
	if s.ExpectedRawFiles < 0 {
		errs = append(errs, "expected_raw_files must be non-negative")
	}
	if _, err := regexp.Compile(s.ContaminantFlag); err != nil {
		errs = append(errs, fmt.Sprintf("contaminant_flag: %v", err))
	}
	for _, p := range s.SpeciesDict.Pairs() {
		if reservedColumns[p.Key] {
			errs = append(errs, fmt.Sprintf("species label %q collides with a canonical column", p.Key))
		}
		if p.Value == "" {
			errs = append(errs, fmt.Sprintf("species %q has an empty pattern", p.Key))
			continue
		}
		if _, err := regexp.Compile(p.Value); err != nil {
			errs = append(errs, fmt.Sprintf("species %q: %v", p.Key, err))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Settings",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// SpeciesLabels returns the species labels in sorted order.
func (s *Settings) SpeciesLabels() []string {
	labels := s.SpeciesDict.Keys()
	sort.Strings(labels)
	return labels
}

// RawFiles returns the distinct raw files of the replicate mapper in declaration order.
func (s *Settings) RawFiles() []string {
	return s.ReplicateMapper.Keys()
}

// TextColumns returns the input columns that are mapped onto identifier columns
// (Proteins, Sequence, Raw file) and must be read as text.
func (s *Settings) TextColumns() []string {
	var cols []string
	for _, p := range s.Mapper.Pairs() {
		switch p.Value {
		case ColProteins, ColSequence, ColRawFile:
			cols = append(cols, p.Key)
		}
	}
	return cols
}

// ExpectedRawFileCount returns the number of raw files a sequence must be quantified in.
func (s *Settings) ExpectedRawFileCount() int {
	if s.ExpectedRawFiles > 0 {
		return s.ExpectedRawFiles
	}
	return s.ReplicateMapper.Len()
}

// Layout returns the input layout implied by the mapper.
func (s *Settings) Layout() Layout {
	if s.Mapper.HasValue(ColRawFile) {
		return LayoutLong
	}
	return LayoutWide
}

// Layout is the shape of an input table.
type Layout int

const (
	// LayoutWide holds one intensity column per raw file.
	LayoutWide Layout = iota
	// LayoutLong holds one row per peptide and raw file with Raw file and Intensity columns.
	LayoutLong
)

func (l Layout) String() string {
	switch l {
	case LayoutWide:
		return "wide"
	case LayoutLong:
		return "long"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}
