package normalize

import (
	"fmt"
	"regexp"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// Annotation holds the biological flags derived from a row's Proteins field.
type Annotation struct {
	Contaminant  bool
	Species      map[string]bool // species label -> protein matched its pattern
	MultiSpecies bool
}

// SpeciesCount returns the number of species flagged for the row.
func (a Annotation) SpeciesCount() int {
	n := 0
	for _, ok := range a.Species {
		if ok {
			n++
		}
	}
	return n
}

type speciesPattern struct {
	label string
	re    *regexp.Regexp
}

// annotator tags rows as contaminant and per species. Patterns are case-sensitive
// regular expressions matched anywhere in the Proteins field.
type annotator struct {
	contaminant *regexp.Regexp
	species     []speciesPattern
	minCount    int
}

func newAnnotator(s *core.Settings) (*annotator, error) {
	a := &annotator{minCount: s.MinCountMultiSpec}

	var err error
	if a.contaminant, err = regexp.Compile(s.ContaminantFlag); err != nil {
		return nil, fmt.Errorf("contaminant_flag: %w", err)
	}

	for _, label := range s.SpeciesLabels() {
		pattern, _ := s.SpeciesDict.Get(label)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("species %s: %w", label, err)
		}
		a.species = append(a.species, speciesPattern{label: label, re: re})
	}

	return a, nil
}

// Annotate derives the flags for one Proteins value. A missing value matches nothing.
func (a *annotator) Annotate(proteins core.Value) Annotation {
	ann := Annotation{Species: make(map[string]bool, len(a.species))}
	if proteins.IsMissing() {
		for _, sp := range a.species {
			ann.Species[sp.label] = false
		}
		return ann
	}

	text := proteins.String()
	ann.Contaminant = a.contaminant.MatchString(text)
	for _, sp := range a.species {
		ann.Species[sp.label] = sp.re.MatchString(text)
	}
	ann.MultiSpecies = ann.SpeciesCount() > a.minCount
	return ann
}

// apply annotates every row and stores the flags as the contaminant column, one
// column per species label and MULTI_SPEC. Existing columns of those names are replaced.
func (a *annotator) apply(t *core.Table) {
	anns := make([]Annotation, t.Len())
	for i := range anns {
		anns[i] = a.Annotate(t.Get(i, core.ColProteins))
	}

	t.SetColumn(core.ColContaminant, func(i int) core.Value {
		return core.Bool(anns[i].Contaminant)
	})
	for _, sp := range a.species {
		label := sp.label
		t.SetColumn(label, func(i int) core.Value {
			return core.Bool(anns[i].Species[label])
		})
	}
	t.SetColumn(core.ColMultiSpec, func(i int) core.Value {
		return core.Bool(anns[i].MultiSpecies)
	})
}
