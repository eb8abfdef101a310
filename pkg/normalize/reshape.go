package normalize

import (
	"sort"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// melt unpivots a wide table. Each raw file column becomes one row per input row,
// with the column name under Raw file and the cell under Intensity. Rows are emitted
// raw file by raw file; all other columns are repeated in their original order.
func melt(t *core.Table, rawFiles []string) (*core.Table, error) {
	isValue := make(map[string]bool, len(rawFiles))
	for _, raw := range rawFiles {
		isValue[raw] = true
	}

	var idCols []string
	for _, c := range t.Columns() {
		if !isValue[c] {
			idCols = append(idCols, c)
		}
	}

	out, err := core.NewTable(append(idCols, core.ColRawFile, core.ColIntensity)...)
	if err != nil {
		return nil, err
	}

	row := make([]core.Value, len(idCols)+2)
	for _, raw := range rawFiles {
		rawValue := core.String(raw)
		for i := 0; i < t.Len(); i++ {
			for j, c := range idCols {
				row[j] = t.Get(i, c)
			}
			row[len(idCols)] = rawValue
			row[len(idCols)+1] = t.Get(i, raw)
			if err := out.AddRow(row...); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// assignReplicates adds the replicate column from the replicate mapper. Raw files
// without an assignment get a missing replicate, or fail in strict mode. The distinct
// unmapped raw files are returned in first-seen order.
func assignReplicates(t *core.Table, s *core.Settings) ([]string, error) {
	var unmapped []string
	seen := make(map[string]bool)

	reps := make([]core.Value, t.Len())
	for i := range reps {
		raw := t.Get(i, core.ColRawFile)
		if raw.IsMissing() {
			reps[i] = core.Missing()
			continue
		}
		rep, ok := s.ReplicateMapper.Get(raw.String())
		if ok {
			reps[i] = core.String(rep)
			continue
		}
		if s.StrictReplicates {
			return nil, &core.UnmappedRawFileError{RawFile: raw.String()}
		}
		reps[i] = core.Missing()
		if !seen[raw.String()] {
			seen[raw.String()] = true
			unmapped = append(unmapped, raw.String())
		}
	}

	if err := t.AddColumn(core.ColReplicate, func(i int) core.Value { return reps[i] }); err != nil {
		return nil, err
	}
	return unmapped, nil
}

// expandRawFiles adds one boolean indicator column per distinct Raw file value,
// in sorted order.
func expandRawFiles(t *core.Table) error {
	distinct := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		raw := t.Get(i, core.ColRawFile)
		if !raw.IsMissing() {
			distinct[raw.String()] = true
		}
	}

	names := make([]string, 0, len(distinct))
	for name := range distinct {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := t.AddColumn(name, func(i int) core.Value {
			raw := t.Get(i, core.ColRawFile)
			return core.Bool(!raw.IsMissing() && raw.String() == name)
		}); err != nil {
			return err
		}
	}
	return nil
}
