// Package normalize converts search-engine result tables into the canonical
// quantification schema and keeps only peptides quantified in every expected raw file.
package normalize

import (
	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// Stats records the number of rows left after each stage of a conversion.
type Stats struct {
	InputRows        int
	AfterDecoy       int
	AfterReshape     int
	AfterAmbiguity   int
	OutputRows       int
	ExpectedRawFiles int
	AllowedSequences int
	UnmappedRawFiles []string // raw files with no replicate (lenient mode only)
}

// Result is the output of Convert.
type Result struct {
	Table      *core.Table
	Replicates *core.ReplicateIndex
	Layout     core.Layout
	Stats      Stats
}

// Convert normalizes table according to settings. The input table is not modified
// and no partial result is returned on error.
func Convert(table *core.Table, settings *core.Settings) (*Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := CheckSchema(table, settings); err != nil {
		return nil, err
	}
	ann, err := newAnnotator(settings)
	if err != nil {
		return nil, err
	}

	res := &Result{Layout: settings.Layout()}
	res.Stats.InputRows = table.Len()
	res.Stats.ExpectedRawFiles = settings.ExpectedRawFileCount()

	t := table.Clone()
	if err := t.Rename(settings.Mapper); err != nil {
		return nil, err
	}

	res.Replicates = core.BuildReplicateIndex(settings.ReplicateMapper)

	t = filterDecoys(t, settings)
	res.Stats.AfterDecoy = t.Len()

	ann.apply(t)

	if res.Layout == core.LayoutWide {
		if t, err = melt(t, settings.RawFiles()); err != nil {
			return nil, err
		}
	}
	res.Stats.AfterReshape = t.Len()

	unmapped, err := assignReplicates(t, settings)
	if err != nil {
		return nil, err
	}
	res.Stats.UnmappedRawFiles = unmapped

	if err := expandRawFiles(t); err != nil {
		return nil, err
	}

	t = dropAmbiguous(t)
	res.Stats.AfterAmbiguity = t.Len()

	if err := buildPeptidoforms(t); err != nil {
		return nil, err
	}

	t, allowed, err := filterComplete(t, res.Stats.ExpectedRawFiles)
	if err != nil {
		return nil, err
	}
	res.Stats.AllowedSequences = allowed
	res.Stats.OutputRows = t.Len()
	res.Table = t

	return res, nil
}

// filterDecoys drops rows whose Reverse value equals the decoy flag. It is a no-op
// unless the mapper produces a Reverse column.
func filterDecoys(t *core.Table, s *core.Settings) *core.Table {
	if !s.Mapper.HasValue(core.ColReverse) {
		return t
	}
	return t.Filter(func(i int) bool {
		return !t.Get(i, core.ColReverse).Equal(s.DecoyFlag)
	})
}

// dropAmbiguous keeps rows whose MULTI_SPEC flag is exactly false.
func dropAmbiguous(t *core.Table) *core.Table {
	return t.Filter(func(i int) bool {
		return t.Get(i, core.ColMultiSpec).Equal(core.Bool(false))
	})
}
