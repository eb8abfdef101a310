package normalize

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// PeptidoformSeparator joins sequence and charge in a peptidoform identifier.
const PeptidoformSeparator = "|Z="

// Peptidoform returns the charge-resolved identifier of a peptide, e.g. "PEPTIDE|Z=2".
func Peptidoform(sequence string, charge core.Value) string {
	return sequence + PeptidoformSeparator + charge.String()
}

// buildPeptidoforms adds the peptidoform column. A row without a charge fails.
func buildPeptidoforms(t *core.Table) error {
	forms := make([]core.Value, t.Len())
	for i := range forms {
		charge := t.Get(i, core.ColCharge)
		if charge.IsMissing() {
			return &core.MissingFieldError{Field: core.ColCharge, Row: i}
		}
		seq := t.Get(i, core.ColSequence)
		if seq.IsMissing() {
			forms[i] = core.Missing()
			continue
		}
		forms[i] = core.String(Peptidoform(seq.String(), charge))
	}

	t.SetColumn(core.ColPeptidoform, func(i int) core.Value { return forms[i] })
	return nil
}

type quantKey struct {
	sequence string
	rawFile  string
}

// filterComplete keeps the rows of sequences whose summed intensity is strictly
// positive in exactly expected distinct raw files. Missing intensities count as zero;
// rows without a sequence or raw file never qualify. It returns the filtered table
// and the number of allowed sequences.
func filterComplete(t *core.Table, expected int) (*core.Table, int, error) {
	sums := make(map[quantKey]float64)
	var keys []quantKey
	ordinals := make(map[string]uint32)

	for i := 0; i < t.Len(); i++ {
		seq := t.Get(i, core.ColSequence)
		raw := t.Get(i, core.ColRawFile)
		if seq.IsMissing() || raw.IsMissing() {
			continue
		}

		var intensity float64
		if v := t.Get(i, core.ColIntensity); !v.IsMissing() {
			f, ok := v.Float()
			if !ok {
				return nil, 0, &core.ValueError{Column: core.ColIntensity, Row: i, Value: v}
			}
			intensity = f
		}

		k := quantKey{sequence: seq.String(), rawFile: raw.String()}
		if _, ok := sums[k]; !ok {
			keys = append(keys, k)
		}
		sums[k] += intensity

		if _, ok := ordinals[k.rawFile]; !ok {
			ordinals[k.rawFile] = uint32(len(ordinals))
		}
	}

	present := make(map[string]*roaring.Bitmap)
	for _, k := range keys {
		if sums[k] <= 0 {
			continue
		}
		bm, ok := present[k.sequence]
		if !ok {
			bm = roaring.New()
			present[k.sequence] = bm
		}
		bm.Add(ordinals[k.rawFile])
	}

	allowed := make(map[string]bool)
	for seq, bm := range present {
		if bm.GetCardinality() == uint64(expected) {
			allowed[seq] = true
		}
	}

	out := t.Filter(func(i int) bool {
		seq := t.Get(i, core.ColSequence)
		return !seq.IsMissing() && allowed[seq.String()]
	})
	return out, len(allowed), nil
}
