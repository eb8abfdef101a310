package core

// ReplicateIndex maps each replicate to the raw files composing it.
// Replicates and raw files keep the order they were first seen in.
type ReplicateIndex struct {
	order []string
	files map[string][]string
}

// BuildReplicateIndex inverts a raw file -> replicate mapping.
func BuildReplicateIndex(m *Mapping) *ReplicateIndex {
	idx := &ReplicateIndex{files: make(map[string][]string)}
	for _, p := range m.Pairs() {
		if _, ok := idx.files[p.Value]; !ok {
			idx.order = append(idx.order, p.Value)
		}
		idx.files[p.Value] = append(idx.files[p.Value], p.Key)
	}
	return idx
}

// Replicates returns the replicate identifiers in order.
func (r *ReplicateIndex) Replicates() []string {
	return append([]string(nil), r.order...)
}

// RawFiles returns the raw files of a replicate, or nil if it is unknown.
func (r *ReplicateIndex) RawFiles(replicate string) []string {
	files, ok := r.files[replicate]
	if !ok {
		return nil
	}
	return append([]string(nil), files...)
}

// Len returns the number of replicates.
func (r *ReplicateIndex) Len() int {
	return len(r.order)
}
